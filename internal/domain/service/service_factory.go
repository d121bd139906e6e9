package service

import (
	"github.com/diillson/univoto/internal/app/auth"
	"github.com/diillson/univoto/internal/app/candidacy"
	"github.com/diillson/univoto/internal/app/election"
	"github.com/diillson/univoto/internal/app/product"
	"github.com/diillson/univoto/internal/app/profile"
	"github.com/diillson/univoto/internal/app/tally"
	"github.com/diillson/univoto/internal/app/user"
	"github.com/diillson/univoto/internal/app/voting"
	"github.com/diillson/univoto/internal/domain/repository"
	"github.com/diillson/univoto/internal/infra/metrics"
	"github.com/diillson/univoto/pkg/cache"
	"github.com/diillson/univoto/pkg/config"
	"github.com/diillson/univoto/pkg/security"
	"go.uber.org/zap"
)

// Repositories agrupa os repositórios usados pelos serviços
type Repositories struct {
	Users       repository.UserRepository
	Elections   repository.ElectionRepository
	Candidacies repository.CandidacyRepository
	Votes       repository.VoteRepository
	Profiles    repository.ProfileRepository
	Products    repository.ProductRepository
}

// Services contém todos os serviços da aplicação
type Services struct {
	Auth        *auth.Service
	Users       *user.Service
	Elections   *election.Service
	Candidacies *candidacy.Service
	Voting      *voting.Service
	Tally       *tally.Service
	Profiles    *profile.Service
	Products    *product.Service
}

// NewServices cria todos os serviços necessários; m pode ser nil
func NewServices(repos Repositories, keys *security.KeyManager, c cache.Cache, cfg *config.Config, m *metrics.APIMetrics, logger *zap.Logger) *Services {
	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = security.DefaultBcryptCost
	}

	authService := auth.NewService(repos.Users, keys, c, cfg.Auth.TokenExpiration, logger)
	tallyService := tally.NewService(repos.Votes, c, cfg.Voting.TallyCacheTTL, logger)
	votingService := voting.NewService(repos.Votes, repos.Elections, repos.Candidacies, tallyService, logger)

	if m != nil {
		authService.SetMetrics(m)
		tallyService.SetMetrics(m)
		votingService.SetMetrics(m)
	}

	return &Services{
		Auth:        authService,
		Users:       user.NewService(repos.Users, bcryptCost, cfg.Auth.PasswordMinLen, logger),
		Elections:   election.NewService(repos.Elections, c, logger),
		Candidacies: candidacy.NewService(repos.Candidacies, repos.Users, repos.Elections, logger),
		Voting:      votingService,
		Tally:       tallyService,
		Profiles:    profile.NewService(repos.Profiles, logger),
		Products:    product.NewService(repos.Products, logger),
	}
}
