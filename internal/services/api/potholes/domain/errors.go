package domain

import perr "potholes/internal/platform/errors"

// client facing failures shared by the service and storage
var (
	ErrNotFound  = perr.NotFoundf("Pothole not found")
	ErrNoChanges = perr.Validationf("No fields to update")
)
