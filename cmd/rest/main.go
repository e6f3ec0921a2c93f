package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"note-share-be/internal/config"
	"note-share-be/internal/controller"
	"note-share-be/internal/repository"
	"note-share-be/internal/service"
	"note-share-be/pkg/blobstore"
	"note-share-be/pkg/database"
	garagestorages3 "note-share-be/pkg/garage-storage-s3"
	miniostorage "note-share-be/pkg/minio-storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	noteRepository, err := openNoteRepository(startupCtx, cfg)
	if err != nil {
		log.Fatalf("failed to open note store: %v", err)
	}
	defer func() {
		if err := noteRepository.Close(); err != nil {
			log.Errorf("failed to close note store: %v", err)
		}
	}()
	log.Infof("note store ready: driver=%s", cfg.StoreDriver)

	blobStore, err := openBlobStore(startupCtx, cfg)
	if err != nil {
		log.Fatalf("failed to open blob store: %v", err)
	}
	log.Infof("blob store ready: driver=%s bucket=%s", cfg.BlobDriver, cfg.BlobBucket)

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	defer pubSub.Close()

	publisherService := service.NewPublisherService(cfg.NoteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.NoteEventsTopic)

	consumeCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if err := consumerService.Consume(consumeCtx); err != nil {
		log.Fatalf("failed to subscribe to note events: %v", err)
	}

	noteService := service.NewNoteService(noteRepository, blobStore, publisherService, cfg.BlobFolder)

	app := controller.NewApp(
		cfg.BodyLimitBytes(),
		controller.NewHealthController(),
		controller.NewNoteController(noteService),
	)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		log.Infof("shutting down: signal=%s", sig)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("server shutdown error: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("server error: %v", err)
	}
	log.Info("server stopped")
}

func openNoteRepository(ctx context.Context, cfg config.Config) (repository.INoteRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreJSON:
		return repository.NewJSONFileNoteRepository(cfg.DataFile)
	case config.StoreBolt:
		return repository.NewBoltNoteRepository(cfg.BoltPath)
	case config.StorePostgres:
		pool, err := database.ConnectDB(ctx, cfg.DBConnectionString)
		if err != nil {
			return nil, err
		}
		repo, err := repository.NewPostgresNoteRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	case config.StoreMongo:
		db, err := repository.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		repo, err := repository.NewMongoNoteRepository(ctx, db)
		if err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func openBlobStore(ctx context.Context, cfg config.Config) (blobstore.Store, error) {
	switch cfg.BlobDriver {
	case config.BlobS3:
		return garagestorages3.NewGarageClient(garagestorages3.Config{
			AccessKey:     cfg.BlobAccessKey,
			SecretKey:     cfg.BlobSecretKey,
			Endpoint:      cfg.BlobEndpoint,
			Region:        cfg.BlobRegion,
			Bucket:        cfg.BlobBucket,
			PublicBaseURL: cfg.BlobPublicBaseURL,
		})
	case config.BlobMinio:
		return miniostorage.New(ctx, miniostorage.Config{
			Endpoint:      cfg.BlobEndpoint,
			AccessKey:     cfg.BlobAccessKey,
			SecretKey:     cfg.BlobSecretKey,
			Bucket:        cfg.BlobBucket,
			PublicBaseURL: cfg.BlobPublicBaseURL,
		})
	}
	return nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
}
