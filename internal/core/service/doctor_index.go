package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// doctorIndex joins records to doctor display names at read time.
type doctorIndex map[string]*domain.User

func loadDoctorIndex(ctx context.Context, dir ports.DoctorDirectory) (doctorIndex, error) {
	doctors, err := dir.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	idx := make(doctorIndex, len(doctors))
	for _, d := range doctors {
		idx[d.ID] = d
	}
	return idx, nil
}

func (idx doctorIndex) displayName(doctorID string) string {
	d, ok := idx[doctorID]
	if !ok {
		return ""
	}
	return doctorName(d)
}

// resolve finds the doctor a booking refers to by id, username or display name.
func (idx doctorIndex) resolve(ref string) (*domain.User, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	if d, ok := idx[ref]; ok {
		return d, true
	}
	for _, d := range idx {
		if d.Username == ref || strings.EqualFold(d.DisplayName, ref) {
			return d, true
		}
	}
	return nil, false
}

func doctorName(d *domain.User) string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Username
}
