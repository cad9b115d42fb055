package controllers

import (
	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/services"
)

func cartService() *services.CartService {
	return services.NewCartService(initializers.DB)
}

func couponService() *services.CouponService {
	return services.NewCouponService(initializers.DB, initializers.Scratch)
}

func checkoutService() *services.CheckoutService {
	return services.NewCheckoutService(initializers.DB, initializers.Scratch, initializers.Payments, initializers.Notifier, initializers.Events)
}

func orderService() *services.OrderService {
	return services.NewOrderService(initializers.DB, initializers.Notifier, initializers.Events)
}

func catalogService() *services.CatalogService {
	return services.NewCatalogService(initializers.DB, initializers.Uploader)
}

func customerService() *services.CustomerService {
	return services.NewCustomerService(initializers.DB)
}

func passwordResetService() *services.PasswordResetService {
	return services.NewPasswordResetService(initializers.DB, initializers.Scratch, initializers.Notifier, initializers.Config.FrontendURL)
}

func addressService() *services.AddressService {
	return services.NewAddressService(initializers.DB)
}

func cardService() *services.CardService {
	return services.NewCardService(initializers.DB)
}

func favoriteService() *services.FavoriteService {
	return services.NewFavoriteService(initializers.DB)
}

func paymentStatusService() *services.PaymentStatusService {
	return services.NewPaymentStatusService(initializers.DB, initializers.Payments)
}
