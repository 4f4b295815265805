package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Customers-api/internal/application/dto"
)

// CustomerReportGenerator genera el listado de clientes como documento (PDF).
type CustomerReportGenerator interface {
	GenerateRoster(ctx context.Context, customers []dto.CustomerResponse, generatedAt time.Time) ([]byte, error)
}
