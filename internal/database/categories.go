package database

import (
	"github.com/shelfwise/library-api/internal/entities"
)

func (d *Database) GetAllCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := d.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (d *Database) GetCategoryByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := d.DB.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *Database) CreateCategory(category *entities.Category) error {
	return d.DB.Create(category).Error
}

func (d *Database) UpdateCategory(category *entities.Category) error {
	return d.DB.Save(category).Error
}

func (d *Database) DeleteCategory(id uint) error {
	return d.DB.Delete(&entities.Category{}, id).Error
}
