package router

import (
	"net/http"

	assetsmem "pet-social/internal/adapters/assets/memory"
	mem "pet-social/internal/adapters/storage/memory"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/users"
	"pet-social/internal/middleware"
	"pet-social/internal/platform/logger"
	"pet-social/internal/platform/metrics"
	"pet-social/internal/ports/auth"

	_ "pet-social/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultAssetsBase = "http://localhost:8080/assets"

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger     // default Nop
	Metrics      *metrics.Metrics  // nil => sin /metrics

	// Opcionales: si no vienen, in-memory.
	Pets   pets.Repository
	Users  users.Repository
	Assets pets.AssetStore
	// AssetsHandler sirve los blobs en /assets/* (memory/fs en dev). nil => no se monta.
	AssetsHandler http.Handler

	IDs                  pets.IDGenerator
	RequireImageOnCreate bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	petRepo := opts.Pets
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	userRepo := opts.Users
	if userRepo == nil {
		userRepo = mem.NewUserRepo()
	}
	assets := opts.Assets
	assetsHandler := opts.AssetsHandler
	if assets == nil {
		// El base es fijo: en dev el router sirve el store en /assets.
		store, err := assetsmem.New(defaultAssetsBase)
		if err != nil {
			panic(err)
		}
		assets = store
		if assetsHandler == nil {
			assetsHandler = store
		}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if assetsHandler != nil {
		r.Mount("/assets", http.StripPrefix("/assets", assetsHandler))
	}

	// users lista pets del repo; pets resuelve el owner vía users.
	usersSvc := users.NewService(userRepo, petRepo, log)
	petsSvc := pets.NewService(petRepo, assets, pets.ServiceOptions{
		IDs:     opts.IDs,
		Logger:  log,
		Metrics: observerOf(opts.Metrics),
		Owners:  usersSvc,
	})
	pets.RegisterRoutes(r, petsSvc, pets.Validator{RequireImageOnCreate: opts.RequireImageOnCreate})
	users.RegisterRoutes(r, usersSvc)

	return r
}

// observerOf evita pasar un *Metrics nil envuelto en la interfaz.
func observerOf(m *metrics.Metrics) pets.AssetObserver {
	if m == nil {
		return nil
	}
	return m
}
