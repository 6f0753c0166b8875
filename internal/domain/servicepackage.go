package domain

import "time"

// PackageItem links a service package to a task type with a quantity.
type PackageItem struct {
	TaskTypeID int64
	Quantity   int
}

// ServicePackage represents a bookable offering of a tenant. Its items
// name the task types the package needs; RequiredStaffCount is the
// aggregate headcount that must be free for the booking window.
type ServicePackage struct {
	ID                 int64
	TenantID           int64
	Name               string
	RequiredStaffCount int
	Items              []PackageItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TaskTypeIDs returns the distinct task types referenced by the package items.
func (p *ServicePackage) TaskTypeIDs() []int64 {
	seen := make(map[int64]struct{}, len(p.Items))
	ids := make([]int64, 0, len(p.Items))
	for _, item := range p.Items {
		if _, ok := seen[item.TaskTypeID]; ok {
			continue
		}
		seen[item.TaskTypeID] = struct{}{}
		ids = append(ids, item.TaskTypeID)
	}
	return ids
}

// RequiresStaffing returns true if the staffing check is meaningful for
// the package. A package without task types or with a zero headcount is
// always considered staffable.
func (p *ServicePackage) RequiresStaffing() bool {
	return p.RequiredStaffCount > 0 && len(p.Items) > 0
}
