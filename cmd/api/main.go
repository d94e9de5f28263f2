package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"foodswap/internal/adapter/api"
	"foodswap/internal/adapter/api/handler"
	apimiddleware "foodswap/internal/adapter/api/middleware"
	"foodswap/internal/adapter/api/router"
	"foodswap/internal/adapter/repository"
	"foodswap/internal/infrastructure/firebase"
	"foodswap/internal/infrastructure/scheduler"
	"foodswap/internal/infrastructure/storage"
	"foodswap/internal/usecase"
	"foodswap/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	serviceAccountPath := ""
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	foodItemRepo := repository.NewFirestoreFoodItemRepository(firestoreClient)
	transactionRepo := repository.NewFirestoreTransactionRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	identityClient := firebase.NewFirebaseAuthClient(authClient)

	userUseCase := usecase.NewUserUseCase(userRepo, identityClient)
	foodItemUseCase := usecase.NewFoodItemUseCase(foodItemRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo)
	transactionUseCase := usecase.NewTransactionUseCase(
		transactionRepo,
		foodItemRepo,
		userRepo,
		notificationRepo,
		chatUseCase,
		time.Duration(cfg.ChatRetentionHrs)*time.Hour,
	)

	reaper := scheduler.NewChatReaper(transactionUseCase, time.Duration(cfg.ReaperIntervalMin)*time.Minute)
	if err := reaper.Start(ctx); err != nil {
		log.Fatalf("Failed to start chat reaper: %v", err)
	}
	defer reaper.Stop()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	userHandler := handler.NewUserHandler(userUseCase)
	foodItemHandler := handler.NewFoodItemHandler(foodItemUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)
	transactionHandler := handler.NewTransactionHandler(transactionUseCase)
	fileHandler := handler.NewFileHandler(storageClient)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	router.SetupUserRouter(e, userHandler, authMiddleware)
	router.SetupFoodItemRouter(e, foodItemHandler, authMiddleware)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupNotificationRouter(e, notificationHandler, authMiddleware)
	router.SetupTransactionRouter(e, transactionHandler, authMiddleware)
	router.SetupFileRouter(e, fileHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
