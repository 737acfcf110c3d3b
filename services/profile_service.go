package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
	"github.com/khelmitra/scoreboard/storage"
)

const maxBioLength = 500

// ProfileService always operates on the profile of the authenticated user;
// there is no way to address another user's profile through it.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*ProfileView, error)
}

type ProfileView struct {
	ID             int     `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	ProfilePicture *string `json:"profile_picture"`
	Bio            *string `json:"bio"`
	FavoriteTeams  []int   `json:"favorite_teams"`
	FavoriteSports []int   `json:"favorite_sports"`
	IsReferee      bool    `json:"is_referee"`
}

// UpdateProfileInput supports partial updates: nil fields are left untouched.
// is_referee is deliberately absent, it cannot be self-granted.
type UpdateProfileInput struct {
	FullName       *string `json:"full_name"`
	Email          *string `json:"email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	FavoriteTeams  *[]int  `json:"favorite_teams"`
	FavoriteSports *[]int  `json:"favorite_sports"`
}

type profileService struct {
	txRunner    repositories.TxRunner
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
}

func NewProfileService(
	txRunner repositories.TxRunner,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
) ProfileService {
	return &profileService{
		txRunner:    txRunner,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile of user %d: %w", userID, err)
	}

	return s.buildView(user, profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*ProfileView, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile of user %d: %w", userID, err)
	}

	userChanged := false
	if input.FullName != nil {
		first, last := splitFullName(*input.FullName)
		user.FirstName, user.LastName = first, last
		userChanged = true
	}
	if input.Email != nil {
		// Writes through to the users row, not the profile.
		user.Email = *input.Email
		userChanged = true
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.ProfilePicture != nil {
		profile.PictureKey = input.ProfilePicture
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if userChanged {
			if err := s.userRepo.Update(ctx, exec, user); err != nil {
				return fmt.Errorf("failed to update user %d: %w", userID, err)
			}
		}
		if err := s.profileRepo.Update(ctx, exec, profile); err != nil {
			return fmt.Errorf("failed to update profile of user %d: %w", userID, err)
		}
		if input.FavoriteTeams != nil {
			if err := s.profileRepo.ReplaceFavoriteTeams(ctx, exec, profile.ID, *input.FavoriteTeams); err != nil {
				if errors.Is(err, repositories.ErrProfileFavoriteInvalid) {
					return ValidationError{"favorite_teams": "contains an unknown team"}
				}
				return fmt.Errorf("failed to update favorite teams: %w", err)
			}
			profile.FavoriteTeamIDs = *input.FavoriteTeams
		}
		if input.FavoriteSports != nil {
			if err := s.profileRepo.ReplaceFavoriteSports(ctx, exec, profile.ID, *input.FavoriteSports); err != nil {
				if errors.Is(err, repositories.ErrProfileFavoriteInvalid) {
					return ValidationError{"favorite_sports": "contains an unknown sport"}
				}
				return fmt.Errorf("failed to update favorite sports: %w", err)
			}
			profile.FavoriteSportIDs = *input.FavoriteSports
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildView(user, profile), nil
}

func (s *profileService) checkInput(input UpdateProfileInput) error {
	if input.Email != nil {
		if err := validate.Var(*input.Email, "required,email"); err != nil {
			return ValidationError{"email": "must be a valid email address"}
		}
	}
	if input.Bio != nil && len(*input.Bio) > maxBioLength {
		return ValidationError{"bio": fmt.Sprintf("must be at most %d characters long", maxBioLength)}
	}
	return nil
}

func (s *profileService) buildView(user *models.User, profile *models.UserProfile) *ProfileView {
	view := &ProfileView{
		ID:             profile.ID,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       strings.TrimSpace(user.FirstName + " " + user.LastName),
		Bio:            profile.Bio,
		FavoriteTeams:  profile.FavoriteTeamIDs,
		FavoriteSports: profile.FavoriteSportIDs,
		IsReferee:      profile.IsReferee,
	}
	if view.FavoriteTeams == nil {
		view.FavoriteTeams = []int{}
	}
	if view.FavoriteSports == nil {
		view.FavoriteSports = []int{}
	}
	if profile.PictureKey != nil {
		url := s.uploader.GetPublicURL(*profile.PictureKey)
		view.ProfilePicture = &url
	}
	return view
}

// splitFullName splits on the first space: "A B C" becomes ("A", "B C"),
// "A" becomes ("A", "").
func splitFullName(fullName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
