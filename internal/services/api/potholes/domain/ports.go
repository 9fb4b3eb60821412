package domain

import "context"

// Repo is the persistence surface for detections
type Repo interface {
	Insert(ctx context.Context, p Pothole) (Pothole, error)
	FindByID(ctx context.Context, id string) (Pothole, error)
	List(ctx context.Context, f ListFilter) ([]Pothole, error)
	Update(ctx context.Context, id string, c Changes) (Pothole, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Pothole, error)
	FindByID(ctx context.Context, id string) (Pothole, error)
	List(ctx context.Context, in ListInput) ([]Pothole, error)
	UpdateByID(ctx context.Context, id string, in UpdateInput) (Pothole, error)
}
