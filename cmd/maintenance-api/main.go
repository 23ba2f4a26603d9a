// Copyright 2024 Bonchef Industrial
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

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

	"github.com/heptiolabs/healthcheck"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/config"
	"github.com/bonchef/maintenance-api/internal/controllers"
	"github.com/bonchef/maintenance-api/internal/services"
	"github.com/bonchef/maintenance-api/internal/store"
)

var buildtime string
var shutdownEnabled bool

func main() {
	var logLevel = os.Getenv("LOGGING_LEVEL")
	encoderConfig := ecszap.NewDefaultEncoderConfig()
	var core zapcore.Core
	switch logLevel {
	case "DEVELOPMENT":
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.DebugLevel)
	default:
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.InfoLevel)
	}
	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.S().Infof("This is maintenance-api build date: %s", buildtime)

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalf("Cannot load configuration: %s", err)
	}

	ctx := context.Background()
	mongo, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zap.S().Fatalf("Cannot connect to document store: %s", err)
	}

	health := healthcheck.NewHandler()
	shutdownEnabled = false
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(100))
	health.AddReadinessCheck("shutdownEnabled", isShutdownEnabled())
	health.AddReadinessCheck("store", func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return mongo.Ping(pingCtx)
	})
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.HealthPort), health); err != nil {
			zap.S().Errorf("Healthcheck listener failed: %s", err)
		}
	}()

	zap.S().Debugf("Healthcheck initialized..")

	svc := services.New(mongo.Store)
	authenticator := auth.New(mongo.Store, cfg.JWTSecret, cfg.JWTExpiry)
	controller := controllers.New(svc, authenticator)

	server := SetupRestAPI(controller, authenticator, cfg)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("REST API listener failed: %s", err)
		}
	}()

	zap.S().Infof("REST API listening on :%d", cfg.HTTPPort)

	// Allow graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigs
	zap.S().Infof("Received signal %s, shutting down", sig)
	shutdownEnabled = true

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnf("Forced shutdown of REST API: %s", err)
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		zap.S().Warnf("Error closing document store: %s", err)
	}

	zap.S().Infof("Successful shutdown. Exiting.")
}

func isShutdownEnabled() healthcheck.Check {
	return func() error {
		if shutdownEnabled {
			return fmt.Errorf("shutdown")
		}
		return nil
	}
}
