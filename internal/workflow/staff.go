package workflow

import (
	"context"
	"fmt"
	"strings"

	"droneVideoOps/internal/cache"
	"droneVideoOps/internal/idgen"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// StaffInput registers a pilot or an editor.
type StaffInput struct {
	Role     models.StaffRole `json:"role" validate:"required,oneof=pilot editor"`
	Name     string           `json:"name" validate:"required,max=120"`
	Phone    string           `json:"phone" validate:"omitempty,phone"`
	City     string           `json:"city" validate:"required_if=Role pilot,max=80"`
	Username string           `json:"username" validate:"max=64"`
}

const staffCodeAttempts = 5

var staffKeys = []string{cache.Key(cache.CollectionStaff)}

// CreateStaff stores a staff member under a freshly generated code. Pilot codes start with
// the city prefix, editor codes with EDT.
func (s *Service) CreateStaff(ctx context.Context, in StaffInput) (*models.Staff, error) {
	in.Role = models.StaffRole(strings.ToLower(strings.TrimSpace(string(in.Role))))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = normalizePhone(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Username = strings.TrimSpace(in.Username)

	var out *models.Staff
	err := s.command(ctx, "create_staff", "", staffKeys, func(ctx context.Context, tx *repository.Store) error {
		if err := check(in); err != nil {
			return err
		}
		if in.Username != "" {
			taken, err := tx.Staff.GetByUsername(ctx, in.Username)
			if err != nil {
				return fmt.Errorf("get staff: %w", err)
			}
			if taken != nil {
				return fieldError("username", "Username is already linked to "+taken.Code)
			}
		}
		now := s.clock()
		for attempt := 0; ; attempt++ {
			st := &models.Staff{
				Code:      s.staffCode(in.Role, in.City),
				Role:      in.Role,
				Name:      in.Name,
				Phone:     in.Phone,
				City:      in.City,
				Username:  in.Username,
				Active:    true,
				CreatedAt: now,
			}
			created, err := tx.Staff.Create(ctx, st)
			if err == nil {
				out = created
				return nil
			}
			if !repository.IsUniqueViolation(err) || attempt+1 >= staffCodeAttempts {
				return fmt.Errorf("create staff: %w", err)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) staffCode(role models.StaffRole, city string) string {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	if role == models.StaffEditor {
		return idgen.EditorCode(s.rnd)
	}
	return idgen.PilotCode(city, s.rnd)
}

// ListStaff returns staff of the given role ordered by name; an empty role lists everyone.
// The full roster is cached and filtered in memory.
func (s *Service) ListStaff(ctx context.Context, role models.StaffRole, activeOnly bool) ([]models.Staff, error) {
	ctx, span := s.query(ctx, "list_staff")
	defer span.End()
	all, err := cache.Fetch(ctx, s.cache, staffKeys[0], func(ctx context.Context) ([]models.Staff, error) {
		return s.store.Staff.List(ctx, "", false)
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.Staff, 0, len(all))
	for _, st := range all {
		if role != "" && st.Role != role {
			continue
		}
		if activeOnly && !st.Active {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// GetStaff returns a staff member by ID or code.
func (s *Service) GetStaff(ctx context.Context, ref string) (*models.Staff, error) {
	ctx, span := s.query(ctx, "get_staff")
	defer span.End()
	st, err := s.store.Staff.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if st == nil {
		if st, err = s.store.Staff.GetByCode(ctx, ref); err != nil {
			return nil, err
		}
	}
	if st == nil {
		return nil, fmt.Errorf("staff %s: %w", ref, ErrNotFound)
	}
	return st, nil
}

// SetStaffActive enables or disables a staff member for new assignments.
func (s *Service) SetStaffActive(ctx context.Context, ref string, active bool) (*models.Staff, error) {
	var out *models.Staff
	err := s.command(ctx, "set_staff_active", "", staffKeys, func(ctx context.Context, tx *repository.Store) error {
		st, err := tx.Staff.GetByID(ctx, ref)
		if err != nil {
			return fmt.Errorf("get staff: %w", err)
		}
		if st == nil {
			if st, err = tx.Staff.GetByCode(ctx, ref); err != nil {
				return fmt.Errorf("get staff: %w", err)
			}
		}
		if st == nil {
			return fmt.Errorf("staff %s: %w", ref, ErrNotFound)
		}
		if err := tx.Staff.SetActive(ctx, st.ID, active); err != nil {
			return fmt.Errorf("set staff active: %w", err)
		}
		st.Active = active
		out = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
