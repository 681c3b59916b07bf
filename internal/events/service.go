package events

import (
	"time"

	"eventhub/internal/models"
)

type EventDBLayer interface {
	CreateEvent(event models.Event) (*models.Event, error)
	GetEventByID(id int64) (*models.Event, error)
	ListEvents() ([]models.Event, error)
	UpdateEvent(id int64, upd models.EventUpdate) (*models.Event, error)
	DeleteEvent(id int64) (bool, error)
}

type EventService struct {
	DB EventDBLayer
}

func NewEventService(db EventDBLayer) *EventService {
	return &EventService{DB: db}
}

func (s *EventService) CreateEvent(title, description, date, location string) (*models.Event, error) {
	return s.DB.CreateEvent(models.Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *EventService) GetEvent(id int64) (*models.Event, error) {
	return s.DB.GetEventByID(id)
}

func (s *EventService) ListEvents() ([]models.Event, error) {
	return s.DB.ListEvents()
}

func (s *EventService) UpdateEvent(id int64, upd models.EventUpdate) (*models.Event, error) {
	return s.DB.UpdateEvent(id, upd)
}

func (s *EventService) DeleteEvent(id int64) (bool, error) {
	return s.DB.DeleteEvent(id)
}
