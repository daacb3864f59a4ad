package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"
)

// GroupService provides group business logic. Groups are curated by
// administrators; regular users only read them.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

type CreateGroupInput struct {
	UserID      uint
	Title       string
	Slug        string
	Description string
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	if err := validation.ValidateGroupTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if err := validation.ValidateGroupSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// DeleteGroup removes a group. Posts in the group survive with their group
// reference cleared.
func (s *GroupService) DeleteGroup(ctx context.Context, userID uint, slug string) error {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return err
	}
	return s.groupRepo.DeleteBySlug(ctx, slug)
}

func (s *GroupService) requireAdmin(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return models.NewForbiddenError("Administrator access required")
	}
	return nil
}
