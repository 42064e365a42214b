package server

import (
	"stablecart-api/internal/handler"
	custommw "stablecart-api/internal/middleware"
	"stablecart-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo           *echo.Echo
	jwtSecret      string
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	rewardsHandler *handler.RewardsHandler
	walletHandler  *handler.WalletHandler
}

func NewServer(
	jwtSecret string,
	log zerolog.Logger,
	userService service.UserService,
	productService service.ProductService,
	cartService service.CartService,
	orderService service.OrderService,
	rewardsService service.RewardsService,
	walletService service.WalletService,
) *Server {
	e := echo.New()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		jwtSecret:      jwtSecret,
		userHandler:    handler.NewUserHandler(userService),
		productHandler: handler.NewProductHandler(productService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(orderService),
		rewardsHandler: handler.NewRewardsHandler(rewardsService),
		walletHandler:  handler.NewWalletHandler(walletService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/auth/register", s.userHandler.Register)
	api.POST("/auth/login", s.userHandler.Login)

	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/search", s.productHandler.SearchProducts)
	api.GET("/products/:productID", s.productHandler.GetProduct)

	api.GET("/rewards/tiers", s.rewardsHandler.GetTiers)

	// -------- authenticated --------
	auth := api.Group("", custommw.JWTAuth(s.jwtSecret))

	auth.GET("/users/me", s.userHandler.GetProfile)
	auth.PATCH("/users/me", s.userHandler.UpdateProfile)
	auth.GET("/users/me/addresses", s.userHandler.ListAddresses)
	auth.POST("/users/me/addresses", s.userHandler.CreateAddress)
	auth.PUT("/users/me/addresses/:addressID", s.userHandler.UpdateAddress)
	auth.DELETE("/users/me/addresses/:addressID", s.userHandler.DeleteAddress)

	auth.GET("/cart", s.cartHandler.GetCart)
	auth.POST("/cart/items", s.cartHandler.AddItem)
	auth.PUT("/cart/items/:productID", s.cartHandler.UpdateItem)
	auth.DELETE("/cart/items/:productID", s.cartHandler.RemoveItem)
	auth.DELETE("/cart", s.cartHandler.ClearCart)
	auth.PUT("/cart/currency", s.cartHandler.SetCurrency)

	auth.POST("/orders", s.orderHandler.Checkout)
	auth.POST("/orders/:orderID/confirm-payment", s.orderHandler.ConfirmPayment)
	auth.GET("/orders", s.orderHandler.ListOrders)
	auth.GET("/orders/:orderID", s.orderHandler.GetOrder)

	auth.GET("/rewards", s.rewardsHandler.GetRewards)
	auth.POST("/rewards/subscribe", s.rewardsHandler.Subscribe)
	auth.GET("/rewards/mystery-boxes", s.rewardsHandler.GetMysteryBoxes)
	auth.POST("/rewards/mystery-boxes/:boxID/open", s.rewardsHandler.OpenMysteryBox)
	auth.GET("/rewards/drops", s.rewardsHandler.GetDrops)

	auth.GET("/wallets", s.walletHandler.ListWallets)
	auth.POST("/wallets", s.walletHandler.CreateWallet)
	auth.POST("/wallets/:walletID/deposit", s.walletHandler.Deposit)
	auth.POST("/wallets/:walletID/withdraw", s.walletHandler.Withdraw)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
