package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"countryclick/backend/countries"
	"countryclick/backend/geocode"
	"countryclick/backend/lookup"
)

//go:embed web
var webFiles embed.FS

// App 伺服器共用的狀態
type App struct {
	cfg      Config
	sessions *SessionStore
}

func newApp(cfg Config, g lookup.Geocoder, cl lookup.CountryLookup) *App {
	mapConfig := lookup.MapConfig{
		APIKey: cfg.MapsAPIKey,
		Center: lookup.DefaultCenter,
		Zoom:   lookup.DefaultZoom,
	}
	return &App{
		cfg:      cfg,
		sessions: NewSessionStore(cfg.SessionTTL, mapConfig, g, cl),
	}
}

// ========== 主程式 ==========
func main() {
	// .env 不一定存在，直接用環境變數也可以
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using process environment")
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	geocoder, err := newGeocoder(cfg)
	if err != nil {
		log.Fatalf("Geocoder error: %v", err)
	}
	app := newApp(cfg, geocoder, newCountryLookup(cfg))

	go app.sessions.Run(context.Background(), time.Minute)

	r := newRouter(app)

	log.Printf("Server running on http://localhost%s", cfg.Addr)
	log.Printf("Frontend: http://localhost%s/web/", cfg.Addr)
	log.Printf("Geocoder: %s, country cache: %s", cfg.Geocoder, cfg.CountryCache)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func newGeocoder(cfg Config) (lookup.Geocoder, error) {
	if cfg.Geocoder == geocoderNominatim {
		return geocode.NewNominatim(geocode.NominatimConfig{
			BaseURL:   cfg.NominatimURL,
			UserAgent: cfg.NominatimUserAgent,
			Timeout:   cfg.HTTPTimeout,
		})
	}
	return geocode.NewGoogle(geocode.GoogleConfig{
		APIKey:     cfg.MapsAPIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
}

func newCountryLookup(cfg Config) lookup.CountryLookup {
	rc := countries.NewRestCountries(cfg.RestCountriesURL, cfg.HTTPTimeout)

	switch cfg.CountryCache {
	case cacheOff:
		return rc
	case cacheMongo:
		client := initMongo(cfg.MongoURI)
		store := countries.NewMongoStore(client.Database(cfg.MongoDB).Collection("countries"), cfg.CountryCacheTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Printf("MongoDB index error: %v", err)
		}
		return countries.NewCached(rc, store)
	default:
		return countries.NewCached(rc, countries.NewMemoryStore(cfg.CountryCacheTTL))
	}
}

func newRouter(app *App) *gin.Engine {
	r := gin.Default()

	// CORS 設定 - 允許前端跨域請求
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(app.cfg.CORSOrigins) == 0 || (len(app.cfg.CORSOrigins) == 1 && app.cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = app.cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// 靜態檔案 - 打包進執行檔
	web, err := fs.Sub(webFiles, "web")
	if err != nil {
		log.Fatal(err)
	}
	r.StaticFS("/web", http.FS(web))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/web/")
	})

	// API 路由
	api := r.Group("/api")
	{
		// 健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		withSession := api.Group("", app.sessionMiddleware)
		withSession.GET("/map/config", app.getMapConfig)
		withSession.POST("/clicks", app.postClick)
		withSession.GET("/state", app.getState)
		withSession.DELETE("/state", app.resetState)
		withSession.GET("/state/stream", app.streamState)
	}

	return r
}
