package cars

import (
	"context"
	"errors"
	"fmt"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/integrations/visionservice"
	"github.com/avtomart/AVM-TestDriveService/internal/service/cars/models"
)

// Service сервис для работы с каталогом автомобилей
type Service struct {
	carRepo      CarRepository
	userRepo     UserRepository
	visionClient VisionServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
// visionClient может быть nil, если интеграция отключена в конфигурации
func NewService(
	carRepo CarRepository,
	userRepo UserRepository,
	visionClient VisionServiceClient,
	logger Logger,
) *Service {
	return &Service{
		carRepo:      carRepo,
		userRepo:     userRepo,
		visionClient: visionClient,
		logger:       logger,
	}
}

// GetByID получает автомобиль по ID (публичный метод)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CarResponse, error) {
	s.logger.Info("GetByID: fetching car id=%d", id)

	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("GetByID: car id=%d not found", id)
			return nil, ErrCarNotFound
		}
		s.logger.Error("GetByID: repository error for car id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCar(car), nil
}

// List получает каталог автомобилей с фильтрацией (публичный метод)
func (s *Service) List(ctx context.Context, req *models.ListCarsRequest) (*models.CarListResponse, error) {
	s.logger.Info("List: fetching cars catalog")

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	cars, err := s.carRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d cars", len(cars))
	return models.FromDomainCarList(cars), nil
}

// Create добавляет автомобиль в каталог
// Доступно только сотрудникам. Если указана фотография и интеграция включена,
// запрашивает AI-сводку состояния у VisionService (с graceful degradation)
func (s *Service) Create(ctx context.Context, req *models.CreateCarRequest) (*models.CarResponse, error) {
	s.logger.Info("Create: creating car %s %s for dealership=%d by user=%d",
		req.Brand, req.Model, req.DealershipID, req.UserID)

	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	car := &domain.Car{
		DealershipID: req.DealershipID,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		PriceRub:     req.PriceRub,
		Mileage:      req.Mileage,
		Color:        req.Color,
		BodyType:     req.BodyType,
		Transmission: req.Transmission,
		VIN:          req.VIN,
		Status:       domain.CarStatusAvailable,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
	}

	// Обогащаем карточку AI-сводкой по фотографии
	car.AISummary = s.analyzePhoto(ctx, req.PhotoURL)

	created, err := s.carRepo.Create(ctx, car)
	if err != nil {
		if errors.Is(err, carRepo.ErrDuplicateVIN) {
			s.logger.Warn("Create: duplicate VIN=%s", req.VIN)
			return nil, ErrDuplicateVIN
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created car id=%d", created.ID)
	return models.FromDomainCar(created), nil
}

// Update обновляет данные автомобиля
// Доступно только сотрудникам. При смене фотографии AI-сводка запрашивается заново
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCarRequest) (*models.CarResponse, error) {
	s.logger.Info("Update: updating car id=%d by user=%d", id, req.UserID)

	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("Update: car id=%d not found", id)
			return nil, ErrCarNotFound
		}
		s.logger.Error("Update: repository error for car id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyCarUpdates(car, req)

	// Смена фотографии - повод запросить свежую AI-сводку
	if req.PhotoURL != nil {
		car.AISummary = s.analyzePhoto(ctx, req.PhotoURL)
	}

	if req.Status != nil {
		status, err := models.ToDomainCarStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for car id=%d", *req.Status, id)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		car.Status = status
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("Update: car id=%d not found during update", id)
			return nil, ErrCarNotFound
		}
		s.logger.Error("Update: repository error for car id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated car id=%d", id)
	return models.FromDomainCar(car), nil
}

// Delete удаляет автомобиль из каталога
// Доступно только сотрудникам
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting car id=%d by user=%d", id, userID)

	if err := s.checkStaffAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("Delete: car id=%d not found", id)
			return ErrCarNotFound
		}
		s.logger.Error("Delete: repository error for car id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted car id=%d", id)
	return nil
}

// Вспомогательные методы

// analyzePhoto запрашивает AI-сводку состояния автомобиля по фотографии.
// Возвращает nil при отключенной интеграции, отсутствии фотографии
// или недоступности VisionService (graceful degradation)
func (s *Service) analyzePhoto(ctx context.Context, photoURL *string) *string {
	if s.visionClient == nil || photoURL == nil || *photoURL == "" {
		return nil
	}

	analysis, err := s.visionClient.AnalyzeCarPhotoWithGracefulDegradation(ctx, *photoURL)
	if err != nil {
		if errors.Is(err, visionservice.ErrServiceDegraded) {
			s.logger.Warn("analyzePhoto: vision service degraded, car will be saved without AI summary")
			return nil
		}
		s.logger.Warn("analyzePhoto: photo analysis failed: %v", err)
		return nil
	}

	return &analysis.Summary
}

// checkStaffAccess проверяет, что пользователь является сотрудником
func (s *Service) checkStaffAccess(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("checkStaffAccess: user=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.Role.CanManageInventory() {
		s.logger.Warn("checkStaffAccess: user=%d with role=%s is not staff", userID, user.Role)
		return ErrAccessDenied
	}

	return nil
}

func applyCarUpdates(car *domain.Car, req *models.UpdateCarRequest) {
	if req.Brand != nil {
		car.Brand = *req.Brand
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.PriceRub != nil {
		car.PriceRub = *req.PriceRub
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Color != nil {
		car.Color = *req.Color
	}
	if req.BodyType != nil {
		car.BodyType = *req.BodyType
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.Description != nil {
		car.Description = req.Description
	}
	if req.PhotoURL != nil {
		car.PhotoURL = req.PhotoURL
	}
}
