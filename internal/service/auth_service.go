package service

import (
	"errors"
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Cfg:         cfg,
	}
}

// Register creates the user and its profile in one transaction. The profile
// is not optional: every registered user holds exactly one.
func (s *AuthService) Register(user *model.User) error {
	if _, err := s.UserRepo.FindByEmail(user.Email); err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.UserRepo.FindByUsername(user.Username); err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	return s.UserRepo.CreateWithProfile(user)
}

type LoginResult struct {
	Token      string             `json:"token"`
	User       *model.User        `json:"user"`
	Profile    *model.UserProfile `json:"profile"`
	FirstLogin bool               `json:"first_login"`
}

// Login verifies the credentials, issues a token and reports (then clears)
// the profile's first-login marker.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	profile, err := s.ProfileRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	firstLogin := profile.FirstLogin
	if firstLogin {
		if err := s.ProfileRepo.ClearFirstLogin(user.ID); err != nil {
			return nil, err
		}
		profile.FirstLogin = false
	}

	return &LoginResult{
		Token:      token,
		User:       user,
		Profile:    profile,
		FirstLogin: firstLogin,
	}, nil
}

// ChangePassword re-verifies the old password before storing the new hash.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return util.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Update(user)
}
