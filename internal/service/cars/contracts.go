package cars

import (
	"context"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/internal/integrations/visionservice"
)

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository интерфейс репозитория пользователей для проверки ролей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// VisionServiceClient интерфейс клиента сервиса анализа фотографий
type VisionServiceClient interface {
	AnalyzeCarPhotoWithGracefulDegradation(ctx context.Context, photoURL string) (*visionservice.Analysis, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
