package database

import (
	"github.com/shelfwise/library-api/internal/entities"
)

func (d *Database) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := d.DB.Order("last_name ASC").Find(&authors).Error
	return authors, err
}

func (d *Database) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := d.DB.First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (d *Database) CreateAuthor(author *entities.Author) error {
	return d.DB.Create(author).Error
}

func (d *Database) UpdateAuthor(author *entities.Author) error {
	return d.DB.Save(author).Error
}

func (d *Database) DeleteAuthor(id uint) error {
	return d.DB.Delete(&entities.Author{}, id).Error
}
