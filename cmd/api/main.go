package main

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/internal/address"
	"storefront/internal/cart"
	"storefront/internal/collection"
	"storefront/internal/config"
	"storefront/internal/customer"
	"storefront/internal/database"
	"storefront/internal/event"
	"storefront/internal/image"
	"storefront/internal/mailer"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/review"
	"storefront/internal/user"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	app := &cli.App{
		Name:  "storefront",
		Usage: "e-commerce storefront API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run database migrations and start the HTTP server",
				Action: func(*cli.Context) error {
					return serve(log)
				},
			},
			{
				Name:  "migrate",
				Usage: "run database migrations and exit",
				Action: func(*cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					db, err := database.Open(cfg.DatabaseURL)
					if err != nil {
						return err
					}
					defer db.Close()
					return database.Migrate(db)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return err
	}

	customers := customer.NewService(customer.NewPostgresRepository(db))

	mailWorker := mailer.NewWorker(log, cfg.MailerFrom, cfg.MailerQueueSize, nil)
	defer mailWorker.Close()

	dispatcher := event.NewDispatcher(log,
		customer.NewUserSubscriber(customers),
		mailWorker.Subscriber(),
		event.SubscriberFunc(func(e event.Event) error {
			log.WithField("event", e.Type()).Info("event dispatched")
			return nil
		}),
	)

	users := user.NewService(user.NewPostgresRepository(db), dispatcher)
	products := product.NewService(product.NewPostgresRepository(db))
	collections := collection.NewService(collection.NewPostgresRepository(db))
	reviews := review.NewService(review.NewPostgresRepository(db), products)
	images := image.NewService(image.NewPostgresRepository(db), products)
	carts := cart.NewService(cart.NewPostgresRepository(db))
	orders := order.NewService(order.NewPostgresRepository(db), users, dispatcher)
	addresses := address.NewService(address.NewPostgresRepository(db), customers)

	resolveCustomerID := func(userID int) (int, error) {
		cust, err := customers.GetByUserID(userID)
		if err != nil {
			return 0, err
		}
		return cust.ID, nil
	}

	srv := fiber.New()
	setupCORS(srv)
	srv.Use(authMiddleware(cfg.JWTSecret))

	srv.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "storefront"})
	})

	user.NewHandler(users, cfg.JWTSecret).RegisterPublicRoutes(srv)
	collection.NewHandler(collections).RegisterRoutes(srv)
	product.NewHandler(products).RegisterRoutes(srv)
	review.NewHandler(reviews).RegisterRoutes(srv)
	image.NewHandler(images).RegisterRoutes(srv)
	cart.NewHandler(carts).RegisterRoutes(srv)
	order.NewHandler(orders, resolveCustomerID).RegisterRoutes(srv)
	address.NewHandler(addresses).RegisterRoutes(srv)
	customer.NewHandler(customers, users, orders).RegisterProtectedRoutes(srv)

	log.WithField("addr", cfg.Addr).Info("starting server")
	return srv.Listen(cfg.Addr)
}

// authMiddleware validates bearer tokens and stores the parsed claims for
// handlers. Requests without a token pass through anonymously; each handler
// decides whether the operation needs an identity or a role.
func authMiddleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		Filter: func(c *fiber.Ctx) bool {
			return !strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		},
	})
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
