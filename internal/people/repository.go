package people

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no person has the requested id.
var ErrNotFound = errors.New("people: person not found")

// Repository stores people.
type Repository interface {
	List(ctx context.Context) ([]Person, error)
	Get(ctx context.Context, id uint) (*Person, error)
	Create(ctx context.Context, p *Person) error
	Update(ctx context.Context, p *Person) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a Repository backed by db.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// List returns every person ordered by id.
func (r *repository) List(ctx context.Context) ([]Person, error) {
	var out []Person
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("people: list: %w", err)
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id uint) (*Person, error) {
	var p Person
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("people: get %d: %w", id, err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Person) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("people: create: %w", err)
	}
	return nil
}

// Update writes the editable columns of p, including zero values.
func (r *repository) Update(ctx context.Context, p *Person) error {
	if p.ID == 0 {
		return ErrNotFound
	}
	err := r.db.WithContext(ctx).Model(p).Select(editableColumns).Updates(p).Error
	if err != nil {
		return fmt.Errorf("people: update %d: %w", p.ID, err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Person{}, id)
	if res.Error != nil {
		return fmt.Errorf("people: delete %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
