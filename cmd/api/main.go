// @title           Bookstore API
// @version         1.0
// @description     Bookstore e-commerce REST API
// @host            localhost:3000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Bearer {access_token}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/TheJisus28/bookstore-api/docs"
	"github.com/TheJisus28/bookstore-api/internal/application/auth"
	"github.com/TheJisus28/bookstore-api/internal/domain/order"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/messaging"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/persistence/redis"
	"github.com/TheJisus28/bookstore-api/internal/infrastructure/persistence/store"
	"github.com/TheJisus28/bookstore-api/pkg/logger"
	"github.com/TheJisus28/bookstore-api/pkg/metrics"
	"github.com/TheJisus28/bookstore-api/pkg/mq"
	"github.com/TheJisus28/bookstore-api/pkg/response"
	"github.com/TheJisus28/bookstore-api/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志
	zlog, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gin.SetMode(cfg.Server.Mode)
	response.SetupBinding()

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 3. 链路追踪
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn("关闭Tracer失败", zap.Error(err))
			}
		}()
		log.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 4. 数据库
	db, err := store.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(db); err != nil {
			log.Warn("关闭数据库失败", zap.Error(err))
		}
	}()
	store.Seed(context.Background(), store.NewUserRepository(db), cfg.Seed, log)

	// 5. Redis（可选）：注销Token黑名单
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, log)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		blacklist = redis.NewTokenBlacklist(client)
	}

	// 6. 消息队列（可选）：订单事件
	var events order.EventPublisher
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
		if err != nil {
			return err
		}
		defer func() { _ = publisher.Close() }()
		breaker := messaging.NewBreaker(cfg.MQ.BreakerThreshold, cfg.MQ.BreakerTimeout, log)
		events = messaging.NewOrderEventPublisher(publisher, breaker, cfg.MQ.PublishTimeout, log)
	}

	// 7. HTTP服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      buildEngine(cfg, log, db, blacklist, events),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 8. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("收到退出信号，开始关闭", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("服务已停止")
	return nil
}
