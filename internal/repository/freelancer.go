// Package repository implements freelancer persistence on top of GORM.
package repository

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"strings" // Search escaping

	"freelancer_directory/internal/domain" // Importing domain models
	"freelancer_directory/internal/utils"  // Password hashing

	mysqldriver "github.com/go-sql-driver/mysql" // MySQL error codes
	"github.com/jackc/pgerrcode"                 // PostgreSQL error codes
	"github.com/jackc/pgx/v5/pgconn"             // PostgreSQL error type
	"github.com/samber/oops"                     // Structured errors
	"gorm.io/gorm"                               // GORM ORM library
	"gorm.io/gorm/clause"                        // Query clauses
)

// mysqlDuplicateEntry is ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// FreelancerRepository implements domain.FreelancerRepository using GORM
type FreelancerRepository struct {
	db *gorm.DB
}

// NewFreelancerRepository creates a new FreelancerRepository
func NewFreelancerRepository(db *gorm.DB) *FreelancerRepository {
	return &FreelancerRepository{db: db}
}

var _ domain.FreelancerRepository = (*FreelancerRepository)(nil)

// GetByID loads a freelancer with its skillsets and hobbies
func (r *FreelancerRepository) GetByID(ctx context.Context, id uint) (*domain.Freelancer, error) {
	return r.getOne(ctx, "id = ?", id, oops.With("id", id))
}

// GetByUsername loads a freelancer by exact username match
func (r *FreelancerRepository) GetByUsername(ctx context.Context, username string) (*domain.Freelancer, error) {
	return r.getOne(ctx, "username = ?", username, oops.With("username", username))
}

// GetByEmail loads a freelancer by exact email match
func (r *FreelancerRepository) GetByEmail(ctx context.Context, email string) (*domain.Freelancer, error) {
	return r.getOne(ctx, "email = ?", email, oops.With("email", email))
}

func (r *FreelancerRepository) getOne(ctx context.Context, query string, arg any, errCtx oops.OopsErrorBuilder) (*domain.Freelancer, error) {
	db := r.db.WithContext(ctx)
	var f domain.Freelancer
	if err := db.Where(query, arg).Take(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCtx.Code("FREELANCER_NOT_FOUND").Wrap(domain.ErrNotFound)
		}
		return nil, errCtx.Code("FREELANCER_GET_FAILED").Wrap(err)
	}
	items := []domain.Freelancer{f}
	if err := loadChildren(db, items); err != nil {
		return nil, errCtx.Code("FREELANCER_GET_FAILED").With("operation", "load children").Wrap(err)
	}
	return &items[0], nil
}

// List returns one page of freelancers matching the archive and search filters, ordered by id
func (r *FreelancerRepository) List(ctx context.Context, opts domain.ListOptions) (*domain.Page, error) {
	opts = opts.Normalize()
	db := r.db.WithContext(ctx)

	// Same predicate for the count and the page
	query := db.Model(&domain.Freelancer{})
	if opts.IsArchived != nil {
		query = query.Where("is_archived = ?", *opts.IsArchived)
	}
	if opts.SearchPhrase != "" {
		like := "%" + escapeLike(strings.ToLower(opts.SearchPhrase)) + "%"
		query = query.Where("(LOWER(username) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!')", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, oops.Code("FREELANCER_LIST_FAILED").With("operation", "count").Wrap(err)
	}

	var items []domain.Freelancer
	order := clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: opts.SortOrder == domain.SortDesc}
	if err := query.Order(order).Offset(opts.Offset()).Limit(opts.PageSize).Find(&items).Error; err != nil {
		return nil, oops.Code("FREELANCER_LIST_FAILED").With("operation", "fetch page").Wrap(err)
	}
	if err := loadChildren(db, items); err != nil {
		return nil, oops.Code("FREELANCER_LIST_FAILED").With("operation", "load children").Wrap(err)
	}
	return domain.NewPage(items, total, opts), nil
}

// Create inserts the freelancer and its children in one transaction and returns the new id
func (r *FreelancerRepository) Create(ctx context.Context, f *domain.Freelancer) (uint, error) {
	if err := hashIfPlain(f); err != nil {
		return 0, oops.Code("FREELANCER_CREATE_FAILED").With("operation", "hash password").Wrap(err)
	}
	f.ID = 0
	f.IsArchived = false // New freelancers are never archived
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Parent first, children are inserted explicitly below
		if err := tx.Omit(clause.Associations).Create(f).Error; err != nil {
			return err
		}
		return insertChildren(tx, f)
	})
	if err != nil {
		if isDuplicateKey(err) {
			return 0, oops.Code("FREELANCER_CONFLICT").With("username", f.Username).Wrap(domain.ErrConflict)
		}
		return 0, oops.Code("FREELANCER_CREATE_FAILED").With("username", f.Username).Wrap(err)
	}
	return f.ID, nil
}

// Update replaces the scalar fields and both child collections of an existing freelancer.
// The password column is only written when f carries a password.
func (r *FreelancerRepository) Update(ctx context.Context, f *domain.Freelancer) (bool, error) {
	if err := hashIfPlain(f); err != nil {
		return false, oops.Code("FREELANCER_UPDATE_FAILED").With("operation", "hash password").Wrap(err)
	}
	fields := map[string]any{
		"username":    f.Username,
		"email":       f.Email,
		"phone_num":   f.PhoneNum,
		"is_archived": f.IsArchived,
		"is_admin":    f.IsAdmin,
	}
	if f.Password != nil {
		fields["password"] = *f.Password
	}

	found := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Freelancer{}).Where("id = ?", f.ID).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			found = false
			return nil // Nothing to replace
		}
		// Full replace of both child collections
		if err := deleteChildren(tx, f.ID); err != nil {
			return err
		}
		return insertChildren(tx, f)
	})
	if err != nil {
		if isDuplicateKey(err) {
			return false, oops.Code("FREELANCER_CONFLICT").With("id", f.ID).Wrap(domain.ErrConflict)
		}
		return false, oops.Code("FREELANCER_UPDATE_FAILED").With("id", f.ID).Wrap(err)
	}
	return found, nil
}

// Archive hides a freelancer from unarchived listings
func (r *FreelancerRepository) Archive(ctx context.Context, id uint) (bool, error) {
	return r.setArchived(ctx, id, true)
}

// Unarchive restores an archived freelancer
func (r *FreelancerRepository) Unarchive(ctx context.Context, id uint) (bool, error) {
	return r.setArchived(ctx, id, false)
}

func (r *FreelancerRepository) setArchived(ctx context.Context, id uint, archived bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Freelancer{}).Where("id = ?", id).Update("is_archived", archived)
	if res.Error != nil {
		return false, oops.Code("FREELANCER_ARCHIVE_FAILED").
			With("id", id).
			With("archived", archived).
			Wrap(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the freelancer's skillsets and hobbies, then the freelancer
func (r *FreelancerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Freelancer{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, oops.Code("FREELANCER_DELETE_FAILED").With("id", id).Wrap(err)
	}
	return deleted, nil
}

// loadChildren fetches skillsets and hobbies for all items in two queries and attaches them
func loadChildren(db *gorm.DB, items []domain.Freelancer) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint, len(items))
	index := make(map[uint]int, len(items)) // Freelancer id -> position in items
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
		items[i].Skillsets = []domain.Skillset{}
		items[i].Hobbies = []domain.Hobby{}
	}

	var skillsets []domain.Skillset
	if err := db.Where("freelancer_id IN ?", ids).Order("id").Find(&skillsets).Error; err != nil {
		return err
	}
	var hobbies []domain.Hobby
	if err := db.Where("freelancer_id IN ?", ids).Order("id").Find(&hobbies).Error; err != nil {
		return err
	}

	for _, s := range skillsets {
		if i, ok := index[s.FreelancerID]; ok {
			items[i].Skillsets = append(items[i].Skillsets, s)
		}
	}
	for _, h := range hobbies {
		if i, ok := index[h.FreelancerID]; ok {
			items[i].Hobbies = append(items[i].Hobbies, h)
		}
	}
	return nil
}

// insertChildren tags every child with the parent id and inserts it with a fresh id
func insertChildren(tx *gorm.DB, f *domain.Freelancer) error {
	for i := range f.Skillsets {
		f.Skillsets[i].ID = 0
		f.Skillsets[i].FreelancerID = f.ID
	}
	for i := range f.Hobbies {
		f.Hobbies[i].ID = 0
		f.Hobbies[i].FreelancerID = f.ID
	}
	if len(f.Skillsets) > 0 {
		if err := tx.Create(&f.Skillsets).Error; err != nil {
			return err
		}
	}
	if len(f.Hobbies) > 0 {
		if err := tx.Create(&f.Hobbies).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteChildren(tx *gorm.DB, freelancerID uint) error {
	if err := tx.Where("freelancer_id = ?", freelancerID).Delete(&domain.Skillset{}).Error; err != nil {
		return err
	}
	return tx.Where("freelancer_id = ?", freelancerID).Delete(&domain.Hobby{}).Error
}

// hashIfPlain replaces a plaintext password with its hash
func hashIfPlain(f *domain.Freelancer) error {
	if !f.HasPassword() {
		if f.Password != nil {
			f.Password = nil // Store NULL rather than an empty hash
		}
		return nil
	}
	if utils.IsHashed(*f.Password) {
		return nil
	}
	hash, err := utils.HashPassword(*f.Password)
	if err != nil {
		return err
	}
	f.Password = &hash
	return nil
}

// escapeLike makes s match literally inside a LIKE pattern using '!' as the escape character
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// isDuplicateKey reports unique-constraint violations from any supported driver
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
