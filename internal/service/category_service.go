package service

import (
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) ListCategories(search string) ([]model.Category, error) {
	return s.CategoryRepo.List(search)
}

func (s *CategoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(category *model.Category) error {
	return s.CategoryRepo.Create(category)
}

func (s *CategoryService) UpdateCategory(id uint, name, description, slug string) (*model.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}
	if slug != "" {
		category.Slug = slug
	}

	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.CategoryRepo.Delete(id)
}
