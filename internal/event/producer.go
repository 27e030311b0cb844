package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	pkgkafka "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/kafka"
)

// Kafka topic constants for hospital domain events.
const (
	TopicUserRegistered     = "hospital.user.registered"
	TopicUserUpdated        = "hospital.user.updated"
	TopicAppointmentCreated = "hospital.appointment.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser        = "user"
	AggregateTypeAppointment = "appointment"
)

// Source identifier for events originating from this server.
const SourceHospitalServer = "hospital-server"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// UserUpdatedData is the payload for a user.updated event.
type UserUpdatedData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AppointmentCreatedData is the payload for an appointment.created event.
type AppointmentCreatedData struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

// Producer publishes hospital domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceHospitalServer, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishUserUpdated publishes a user.updated event.
func (p *Producer) PublishUserUpdated(ctx context.Context, user *domain.User) error {
	data := UserUpdatedData{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserUpdated, user.ID, AggregateTypeUser, SourceHospitalServer, data)
	if err != nil {
		return fmt.Errorf("create user.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserUpdated, event); err != nil {
		return fmt.Errorf("publish user.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.updated event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishAppointmentCreated publishes an appointment.created event.
func (p *Producer) PublishAppointmentCreated(ctx context.Context, a *domain.Appointment) error {
	data := AppointmentCreatedData{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      a.Date,
		Status:    a.Status,
	}

	event, err := pkgkafka.NewEvent(TopicAppointmentCreated, a.ID, AggregateTypeAppointment, SourceHospitalServer, data)
	if err != nil {
		return fmt.Errorf("create appointment.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicAppointmentCreated, event); err != nil {
		return fmt.Errorf("publish appointment.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published appointment.created event",
		slog.String("appointment_id", a.ID),
		slog.String("patient_id", a.PatientID),
	)

	return nil
}
