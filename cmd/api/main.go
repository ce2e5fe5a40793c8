package main

import (
	"context"
	"net/http"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/credentials"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/integrator/google"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/marketing-dashboard-api/internal/api"
	"github.com/vfg2006/marketing-dashboard-api/internal/api/handler"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	if err := cfg.ValidateOAuthClient(); err != nil {
		logrus.WithError(err).Warn("Cliente OAuth do Google incompleto; tokens expirados não serão renovados")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient := redisconn(ctx, cfg.Redis)
	defer redisClient.Close()

	m := metrics.New(nil)

	cipher, err := credentials.NewCipher(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a cifragem das credenciais")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	credentialRepo := repository.NewCredentialRepository(pgConn, cipher)
	tokenCache := credentials.NewTokenCache(redisClient, cfg.Redis.TokenTTL)
	refresher := credentials.NewRefresher(cfg, httpClient)

	credentialService := credentialing.NewService(cfg, credentialRepo, tokenCache, refresher, m)

	adsService, err := reporting.NewAdsService(cfg, google.NewAdsSource(cfg, httpClient), credentialService, m)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o relatório do Google Ads")
	}

	gscService, err := reporting.NewGSCService(cfg, google.NewGSCSource(cfg, httpClient), credentialService, m)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o relatório do Search Console")
	}

	ga4Service := reporting.NewGA4Service(cfg, google.NewGA4Source(cfg, httpClient), credentialService, m)

	server, err := api.New(cfg, api.Services{
		Ads:           adsService,
		GA4:           ga4Service,
		GSC:           gscService,
		Credentials:   credentialService,
		Authenticator: authenticating.NewService(cfg),
		Metrics:       m,
		Dependencies: map[string]handler.Pinger{
			"database": pgConn,
			"redis":    tokenCache,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	_ = os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn cria o cliente do cache de tokens; Redis fora do ar não impede a
// subida, as requisições caem direto no banco
func redisconn(ctx context.Context, redisConfig config.Redis) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis indisponível; cache de tokens desativado até reconectar")
		return client
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return client
}
