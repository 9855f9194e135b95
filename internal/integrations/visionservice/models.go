package visionservice

// AnalyzeRequest запрос на анализ фотографии автомобиля
type AnalyzeRequest struct {
	PhotoURL string `json:"photo_url"`
}

// Analysis результат анализа фотографии от VisionService
type Analysis struct {
	Summary   string   `json:"summary"`   // Краткая сводка состояния автомобиля
	Condition string   `json:"condition"` // Оценка состояния (excellent, good, fair, poor)
	Defects   []string `json:"defects"`   // Обнаруженные дефекты кузова
}

// ErrorResponse модель ошибки от VisionService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
