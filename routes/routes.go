package routes

import (
	"net/http"

	"verda/auth"
	"verda/cart"
	"verda/categories"
	"verda/checkout"
	"verda/invoice"
	"verda/middleware"
	"verda/orderlive"
	"verda/orders"
	"verda/pay"
	"verda/products"
	"verda/ratelim"
	"verda/users"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users/profile", middleware.Authenticate(users.GetProfile))
	router.PUT("/api/users/profile", ratelim.RateLimit(middleware.Authenticate(users.UpdateProfile)))

	router.GET("/api/users", middleware.Authenticate(middleware.AdminOnly(users.ListUsers)))
	router.GET("/api/users/:userid", middleware.Authenticate(middleware.AdminOnly(users.GetUser)))
	router.PUT("/api/users/:userid", middleware.Authenticate(middleware.AdminOnly(users.UpdateUser)))
	router.DELETE("/api/users/:userid", middleware.Authenticate(middleware.AdminOnly(users.DeleteUser)))
}

func AddProductRoutes(router *httprouter.Router) {
	// Static siblings of :productid live under their own prefixes;
	// httprouter rejects mixed static and param segments.
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/top-products", products.GetTopProducts)
	router.GET("/api/new-products", products.GetNewProducts)
	router.POST("/api/filter-products", products.GetFilteredProducts)
	router.GET("/api/products/:productid", products.GetProduct)

	router.POST("/api/products", ratelim.RateLimit(middleware.Authenticate(middleware.AdminOnly(products.CreateProduct))))
	router.PUT("/api/products/:productid", ratelim.RateLimit(middleware.Authenticate(middleware.AdminOnly(products.UpdateProduct))))
	router.DELETE("/api/products/:productid", middleware.Authenticate(middleware.AdminOnly(products.DeleteProduct)))
	router.POST("/api/upload", ratelim.RateLimit(middleware.Authenticate(middleware.AdminOnly(products.UploadImage))))

	router.POST("/api/products/:productid/reviews", ratelim.RateLimit(middleware.Authenticate(products.AddReview)))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.GET("/api/categories", categories.ListCategories)
	router.GET("/api/categories/:categoryid", categories.GetCategory)

	router.POST("/api/categories", ratelim.RateLimit(middleware.Authenticate(middleware.AdminOnly(categories.CreateCategory))))
	router.PUT("/api/categories/:categoryid", ratelim.RateLimit(middleware.Authenticate(middleware.AdminOnly(categories.UpdateCategory))))
	router.DELETE("/api/categories/:categoryid", middleware.Authenticate(middleware.AdminOnly(categories.DeleteCategory)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart/items", ratelim.RateLimit(middleware.Authenticate(cart.SetCartItem)))
	router.DELETE("/api/cart/items/:productid", middleware.Authenticate(cart.RemoveCartItem))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router) {
	router.POST("/api/checkout/session", ratelim.RateLimit(middleware.Authenticate(checkout.SaveSession)))
	router.GET("/api/checkout/session", middleware.Authenticate(checkout.GetSession))
}

func AddOrderRoutes(router *httprouter.Router, svc *orders.OrderService) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(svc.Create)))
	router.GET("/api/myorders", middleware.Authenticate(svc.Mine))
	router.GET("/api/orders/:id", middleware.Authenticate(svc.Get))
	router.GET("/api/orders/:id/invoice", middleware.Authenticate(invoice.GetInvoice))
	router.PUT("/api/orders/:id/pay", ratelim.RateLimit(middleware.Authenticate(pay.Idempotency(svc.Pay))))
	router.PUT("/api/orders/:id/deliver", middleware.Authenticate(middleware.AdminOnly(svc.Deliver)))

	router.GET("/api/orders", middleware.Authenticate(middleware.AdminOnly(svc.List)))
	router.GET("/api/admin/stats/sales", middleware.Authenticate(middleware.AdminOnly(svc.TotalSales)))
	router.GET("/api/admin/stats/orders", middleware.Authenticate(middleware.AdminOnly(svc.TotalOrders)))
	router.GET("/api/admin/stats/sales-by-date", middleware.Authenticate(middleware.AdminOnly(svc.SalesByDate)))
}

func AddOrderLiveRoutes(router *httprouter.Router, hub *orderlive.Hub) {
	router.GET("/ws/orders/:id", orderlive.WebSocketHandler(hub))
}
