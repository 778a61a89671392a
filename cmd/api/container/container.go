package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/tribu-app/tribu/cmd/api/service"
	"github.com/tribu-app/tribu/common/bootstrap"
	rediscommon "github.com/tribu-app/tribu/common/redis"
	"github.com/tribu-app/tribu/common/repository"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components
	Redis      *rediscommon.Client

	// Repositories
	MemberRepo       *repository.MemberRepository
	RelationshipRepo *repository.RelationshipRepository

	// Services
	MemberService       *service.MemberService
	RelationshipService *service.RelationshipService
	TreeService         *service.TreeService
	Audit               *service.AuditPublisher
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config

	// Tree cache is optional; services treat a nil cache as disabled
	var redisClient *rediscommon.Client
	var treeCache service.TreeCache
	if cfg.Cache.Enabled {
		raw := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisClient = rediscommon.NewClient(raw, components.Logger)
		treeCache = redisClient
	}

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(components.DB)
	relationshipRepo := repository.NewRelationshipRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	memberService := service.NewMemberService(memberRepo, treeCache, components.Logger)
	relationshipService := service.NewRelationshipService(relationshipRepo, treeCache, components.Logger)
	treeService := service.NewTreeService(memberRepo, relationshipRepo, treeCache, cfg.Cache.TreeTTL, components.Logger)
	audit := service.NewAuditPublisher(components.Queue, components.Logger)

	return &Container{
		Components:          components,
		Redis:               redisClient,
		MemberRepo:          memberRepo,
		RelationshipRepo:    relationshipRepo,
		MemberService:       memberService,
		RelationshipService: relationshipService,
		TreeService:         treeService,
		Audit:               audit,
	}, nil
}
