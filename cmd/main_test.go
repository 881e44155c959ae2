package main

import (
	"context"
	"os"
	"testing"

	"github.com/okian/langkah/internal/adapters/http/api"
	service "github.com/okian/langkah/internal/app"
	"github.com/okian/langkah/internal/config"
	"github.com/okian/langkah/internal/seed"
	"github.com/okian/langkah/pkg/logger"
	"github.com/okian/langkah/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("LANGKAH_ADDR", ":8080")
			_ = os.Setenv("LANGKAH_ROVING_MAX_SCORE", "3")
			defer func() {
				_ = os.Unsetenv("LANGKAH_ADDR")
				_ = os.Unsetenv("LANGKAH_ROVING_MAX_SCORE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RovingMaxScore, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithRovingMaxScore(3),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When updating system metrics", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating service metrics from a started service", func() {
			ctx := context.Background()
			svc := service.New()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then it should not panic", func() {
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When seeding a fresh service", func() {
			ctx := context.Background()
			svc := service.New()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the reference store should be populated", func() {
				convey.So(seed.Install(ctx, svc, nil), convey.ShouldBeNil)
				convey.So(svc.ReferenceEmpty(ctx), convey.ShouldBeFalse)
			})
		})
	})
}
