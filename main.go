//
// Discussion
// ==========
// A HTTP REST backend for a moderated article board, on top of MongoDB.
//
// Pass -routes for the generated route docs:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ ACCESS_TOKEN_SECRET=... MONGODB_URI=mongodb://localhost:27017 go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:5003/
// Discussion server start now.
//
// $ curl -X POST -d '{"email":"a@x.com"}' http://localhost:5003/jwt
// {"token":"eyJ..."}
//
// $ curl -X POST -d '{"title":"A","image":"x","author":{"email":"a@x.com"}}' http://localhost:5003/articles
// {"acknowledged":true,"insertedId":"6650..."}
//
// $ curl http://localhost:5003/articles/6650...
// {"_id":"6650...","title":"A","image":"x","author":{"email":"a@x.com"},"status":"pending",...}
//
// $ curl -H 'Authorization: Bearer eyJ...' -H 'email: a@x.com' http://localhost:5003/my-articles
// [{"_id":"6650...","title":"A",...}]
//
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/discussion/internal/config"
	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/logging"
	"github.com/SergeyParamoshkin/discussion/internal/metrics"
	"github.com/SergeyParamoshkin/discussion/internal/server"
	"github.com/SergeyParamoshkin/discussion/internal/store"
	"github.com/SergeyParamoshkin/discussion/internal/token"
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	render.Respond = errresponse.Respond

	// Passing -routes to the program will generate docs for the router
	// definition without touching the database.
	if cfg.Routes {
		if err := printRoutes(); err != nil {
			fmt.Fprintf(os.Stderr, "routes: %v\n", err)
			os.Exit(1)
		}

		return
	}

	logger, err := logging.New(cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	a := App{
		sugarLogger: logger.Sugar(),
		config:      cfg,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = a.run(ctx)
	stop()

	if err != nil {
		a.sugarLogger.Errorw("server stopped", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	a.sugarLogger.Infow("server exited properly")
	_ = logger.Sync()
}

func (a *App) run(ctx context.Context) error {
	exporter, err := metrics.NewExporter()
	if err != nil {
		return fmt.Errorf("initialize prometheus exporter: %w", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	tokens, err := token.NewService(a.config.TokenSecret)
	if err != nil {
		return err
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer a.disconnect(client)

	st := store.New(client.Database(a.config.DBName), a.config.DBTimeout)

	r := server.NewRouter(server.Deps{
		Logger:      a.sugarLogger,
		Metrics:     metrics.NewRecorder(global.Meter(config.ServiceName)),
		Tokens:      tokens,
		Articles:    st.Articles,
		Users:       st.Users,
		Publishers:  st.Publishers,
		CORSOrigins: a.config.CORSOrigins,
	})

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	return a.serve(ctx, newServer(a.config.Addr, r), newServer(a.config.DiagAddr, diagRouter))
}

// connect dials MongoDB and pings the deployment; the process must not start
// serving against a database it cannot reach.
func (a *App) connect(ctx context.Context) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.DBTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(a.config.MongoURI).
		SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	a.sugarLogger.Infow("pinged deployment, connected to mongodb", "db", a.config.DBName)

	return client, nil
}

func (a *App) disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		a.sugarLogger.Errorw("disconnect mongodb", "error", err)

		return
	}

	a.sugarLogger.Infow("mongodb disconnected")
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs every server until ctx is cancelled or one of them fails, then
// shuts all of them down.
func (a *App) serve(ctx context.Context, servers ...*http.Server) error {
	g, gCtx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv

		g.Go(func() error {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}

			return nil
		})

		g.Go(func() error {
			<-gCtx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func printRoutes() error {
	// Connect does not dial; the stores only need collection handles here.
	client, err := mongo.Connect(context.Background(), options.Client())
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	tokens, err := token.NewService(config.ServiceName)
	if err != nil {
		return err
	}

	st := store.New(client.Database(config.ServiceName), time.Second)
	r := server.NewRouter(server.Deps{
		Tokens:     tokens,
		Articles:   st.Articles,
		Users:      st.Users,
		Publishers: st.Publishers,
	})

	fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
		ProjectPath: "github.com/SergeyParamoshkin/discussion",
		Intro:       "Discussion server routes.",
	}))

	return nil
}
