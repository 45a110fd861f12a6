package usecases

import "github.com/iwtcode/graphtecAdapter/internal/interfaces"

// UseCases - агрегатор всех use case интерфейсов
type UseCases struct {
	interfaces.Usecases
}

// NewUsecases - конструктор для UseCases
func NewUsecases(
	cutterSvc interfaces.CutterService,
	repo interfaces.CutJobRepository,
) interfaces.Usecases {
	return NewUsecase(cutterSvc, repo)
}
