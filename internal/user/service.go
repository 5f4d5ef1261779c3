package user

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/model"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/pgerr"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
)

type userService struct {
	repo userRepository
}

// UserResponse is the scalar projection returned on writes. The password
// column never leaves the service.
type UserResponse struct {
	Id        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserListItem struct {
	Id          uint64    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	WalletCount int64     `json:"walletCount"`
}

type WalletSummary struct {
	Id        uint64    `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserDetail struct {
	Id        uint64          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"createdAt"`
	Wallets   []WalletSummary `json:"wallets"`
}

func toResponse(u model.User) *UserResponse {
	return &UserResponse{Id: u.Id, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
}

func (s *userService) create(body userRequest) (*UserResponse, *reject.ProblemWithTrace) {
	user := model.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}

	if err := s.repo.create(&user); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("email already exists"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	return toResponse(user), nil
}

func (s *userService) findAll() ([]UserListItem, *reject.ProblemWithTrace) {
	items, err := s.repo.list()
	if err != nil {
		return nil, unexpected(err)
	}
	return items, nil
}

func (s *userService) findById(id uint64) (*UserDetail, *reject.ProblemWithTrace) {
	user, err := s.repo.getWithWallets(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem("user not found"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	detail := UserDetail{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Wallets:   make([]WalletSummary, 0, len(user.Wallets)),
	}
	for _, w := range user.Wallets {
		detail.Wallets = append(detail.Wallets, WalletSummary{
			Id:        w.Id,
			Address:   w.Address,
			CreatedAt: w.CreatedAt,
		})
	}

	return &detail, nil
}

func (s *userService) update(id uint64, body userRequest) (*UserResponse, *reject.ProblemWithTrace) {
	user, err := s.repo.get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem("user not found"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	user.Name = body.Name
	user.Email = body.Email
	user.Password = body.Password

	if err := s.repo.save(user); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("email already exists"),
				Cause:   err,
			}
		}
		return nil, unexpected(err)
	}

	return toResponse(*user), nil
}

func (s *userService) delete(id uint64) *reject.ProblemWithTrace {
	affected, err := s.repo.delete(id)
	if err != nil {
		return unexpected(err)
	}
	if affected == 0 {
		return &reject.ProblemWithTrace{
			Problem: reject.NotFoundProblem("user not found"),
			Cause:   gorm.ErrRecordNotFound,
		}
	}
	return nil
}
