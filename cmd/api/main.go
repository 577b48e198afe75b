package main

import (
	"context"
	"log"
	"time"

	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/kvs"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID string, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"tv":  tokenVersion,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Tenant{},
		&model.Category{},
		&model.Product{},
		&model.OptionGroup{},
		&model.Option{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	tenantRepo := infraRepo.NewTenantGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	optionRepo := infraRepo.NewOptionGormRepository(gormDB)

	//カートの保存先。Redisが無ければメモリで動かす（開発用）。
	var storageFactory cart.StorageFactory
	if cfg.RedisAddr != "" {
		redisClient, err := kvs.Connect(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		storageFactory = func(deviceID string) cart.Storage {
			return kvs.NewRedisStore(redisClient, "dev:"+deviceID)
		}
	} else {
		log.Println("REDIS_ADDR not set, carts are kept in memory")
		storageFactory = func(deviceID string) cart.Storage {
			return cart.NewMemoryStorage()
		}
	}

	cartManager := cart.NewManager(infraRepo.NewCartCatalog(productRepo), storageFactory)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//refresh TTL
	refreshTTL := 14 * 24 * time.Hour

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	tenantUC := usecase.NewTenantUsecase(tenantRepo, idGen, clock, cfg.FEURL)
	categoryUC := usecase.NewCategoryUsecase(tenantRepo, categoryRepo, idGen, clock)
	productUC := usecase.NewProductUsecase(tenantRepo, productRepo, categoryRepo, idGen, clock)
	optionUC := usecase.NewOptionUsecase(tenantRepo, productRepo, optionRepo, idGen, clock)
	catalogUC := usecase.NewCatalogUsecase(tenantRepo, categoryRepo, productRepo, optionRepo)
	cartUC := usecase.NewCartUsecase(cartManager)
	checkoutUC := usecase.NewCheckoutUsecase(tenantRepo, cartManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC, refreshTTL),
		Tenant:   handler.NewTenantHandler(tenantUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Product:  handler.NewProductHandler(productUC),
		Option:   handler.NewOptionHandler(optionUC),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers, userRepo); err != nil {
		log.Fatal(err)
	}
}
