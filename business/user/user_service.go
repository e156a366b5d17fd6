package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
	"github.com/shakeel7521951/bursa-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetOTP(ctx context.Context, id uint, otp string, expires time.Time) error
	ClearOTP(ctx context.Context, id uint, markVerified bool) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
}

type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

type SessionStore interface {
	Store(ctx context.Context, token, userID, role string, ttl time.Duration) error
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

const (
	otpTTL     = 10 * time.Minute
	sessionTTL = time.Hour

	subjectVerifyEmail   = "Verifică-ți adresa de email - Bursa Trans Romania Italia"
	subjectResetPassword = "OTP pentru resetarea parolei - Bursa Trans Romania Italia"
)

const emailBodyOTP = `<p>Salut <strong>%s</strong>,</p>
<p>%s</p>
<h3 style="font-size: 32px; font-weight: bold;">%s</h3>
<p>Codul este valabil %v minute. Dacă nu ai solicitat acest lucru, poți ignora acest email.</p>
<p>Cu stimă,<br>Bursa Trans Romania Italia</p>`

var validRoles = map[string]bool{
	domain.RoleCustomer:    true,
	domain.RoleTransporter: true,
	domain.RoleAdmin:       true,
}

// ErrUnverifiedDeleted signals that an unverified account attempted to log
// in and was removed, forcing re-registration.
var ErrUnverifiedDeleted = errors.New("account not verified, please register again")

type UserService struct {
	userRepo  UserRepository
	validate  *validator.Validate
	notifRepo NotificationRepository
	sessions  SessionStore
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	sessions SessionStore,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validate:  validate,
		notifRepo: notifRepo,
		sessions:  sessions,
	}
}

// Register creates an unverified account and emails a one-time code.
func (s *UserService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, domain.NewValidationError("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, domain.NewValidationError("password must be at least 6 characters")
	}

	role := strings.ToLower(user.Role)
	if role == "" {
		role = domain.RoleCustomer
	}
	if !validRoles[role] || role == domain.RoleAdmin {
		return domain.User{}, domain.NewValidationError("invalid role")
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, domain.NewValidationError("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		logger.Error("Failed to generate otp", err)
		return domain.User{}, errors.New("failed to generate verification code")
	}

	expires := time.Now().Add(otpTTL)
	newUser := domain.User{
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Password:   string(passwordHash),
		Role:       role,
		IsVerified: false,
		OTP:        otp,
		OTPExpires: &expires,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	body := fmt.Sprintf(emailBodyOTP, newUser.Name,
		"Îți mulțumim pentru înregistrare! Codul tău OTP pentru verificare este:",
		otp, otpTTL.Minutes())
	if err := s.notifRepo.SendEmail(newUser.Name, newUser.Email, subjectVerifyEmail, body); err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

// VerifyAccount consumes the registration OTP, promotes the account to
// verified, and issues a session token.
func (s *UserService) VerifyAccount(ctx context.Context, email, otp string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, err
	}

	if err := checkOTP(user, otp); err != nil {
		return "", domain.User{}, err
	}

	if err := s.userRepo.ClearOTP(ctx, user.ID, true); err != nil {
		logger.Error("Failed to mark user verified", err)
		return "", domain.User{}, err
	}
	user.IsVerified = true
	user.OTP = ""

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func checkOTP(user domain.User, otp string) error {
	if user.OTP == "" || user.OTP != otp {
		return domain.NewValidationError("invalid or expired otp")
	}

	if user.OTPExpires != nil && time.Now().After(*user.OTPExpires) {
		return domain.NewValidationError("invalid or expired otp")
	}

	return nil
}

func (s *UserService) issueSession(ctx context.Context, user domain.User) (string, error) {
	userIDStr := strconv.FormatUint(uint64(user.ID), 10)

	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", errors.New("failed to generate token")
	}

	if err := s.sessions.Store(ctx, token, userIDStr, user.Role, sessionTTL); err != nil {
		logger.Error("Failed to store session", err)
		return "", err
	}

	return token, nil
}

// Login rejects unverified accounts by deleting them outright, forcing
// re-registration.
func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, err
	}

	if !user.IsVerified {
		if err := s.userRepo.DeleteByEmail(ctx, user.Email); err != nil {
			logger.Error("Failed to delete unverified account", err)
		}
		return "", domain.User{}, ErrUnverifiedDeleted
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect")
		return "", domain.User{}, domain.NewValidationError("incorrect email or password")
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// ValidateSession lets the auth middleware check tokens against the store.
func (s *UserService) ValidateSession(ctx context.Context, token string) (string, error) {
	return s.sessions.Validate(ctx, token)
}

// ForgotPassword issues a reset OTP to the account's email.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		logger.Error("Failed to generate otp", err)
		return errors.New("failed to generate reset code")
	}

	if err := s.userRepo.SetOTP(ctx, user.ID, otp, time.Now().Add(otpTTL)); err != nil {
		return err
	}

	body := fmt.Sprintf(emailBodyOTP, user.Name,
		"Am primit o cerere de resetare a parolei contului tău. Folosește OTP-ul de mai jos:",
		otp, otpTTL.Minutes())
	if err := s.notifRepo.SendEmail(user.Name, user.Email, subjectResetPassword, body); err != nil {
		logger.Warn("Failed to send reset email", err)
	}

	return nil
}

// VerifyOTP checks a reset code without consuming it.
func (s *UserService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	return checkOTP(user, otp)
}

// ResetPassword sets a new password for an account holding a verified OTP.
func (s *UserService) ResetPassword(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.OTP == "" {
		return domain.NewValidationError("otp not verified, please verify the otp first")
	}

	if err := s.validate.Var(password, "required,min=6"); err != nil {
		return domain.NewValidationError("password must be at least 6 characters")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return errors.New("failed to hash password")
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash))
}

// UpdatePassword changes the password of a logged-in user.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(currentPassword, user.Password) {
		return domain.NewValidationError("current password is incorrect")
	}

	if currentPassword == newPassword {
		return domain.NewValidationError("new password must differ from the current one")
	}

	if err := s.validate.Var(newPassword, "required,min=6"); err != nil {
		return domain.NewValidationError("password must be at least 6 characters")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return errors.New("failed to hash password")
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash))
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// UpdateProfile lets a user change their own profile fields, including the
// customer/transporter role switch.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, name, phone, role string) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if role != "" {
		role = strings.ToLower(role)
		if !validRoles[role] || role == domain.RoleAdmin {
			return domain.User{}, domain.NewValidationError("invalid role")
		}
		user.Role = role
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// UpdateUserRole is the admin-side role assignment.
func (s *UserService) UpdateUserRole(ctx context.Context, id uint, role string) (domain.User, error) {
	role = strings.ToLower(role)
	if !validRoles[role] {
		return domain.User{}, domain.NewValidationError("invalid role")
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return domain.User{}, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("User not found for deletion", err)
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
