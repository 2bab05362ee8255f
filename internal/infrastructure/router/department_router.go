package router

import (
	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/usecase"
	"contactdesk-service/pkg/logger"
)

// DepartmentRouter routes departments to the handler for their source
// document shape.
type DepartmentRouter struct {
	handlers []usecase.DepartmentHandler
	logger   logger.Logger
}

// NewDepartmentRouter creates a new department router
func NewDepartmentRouter(logger logger.Logger) *DepartmentRouter {
	return &DepartmentRouter{
		handlers: make([]usecase.DepartmentHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for a source-document shape
func (r *DepartmentRouter) Register(handler usecase.DepartmentHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered department handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given department
func (r *DepartmentRouter) GetHandler(dept entity.Department) usecase.DepartmentHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(dept) {
			return handler
		}
	}
	return nil
}
