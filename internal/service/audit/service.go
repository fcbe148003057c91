package audit

import (
	"context"
	"encoding/json"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

// Service записывает аудит-след мутирующих операций
//
// Запись best-effort: аудит не участвует в транзакции основной операции
// и его сбой никогда не откатывает и не проваливает бронирование.
// Ошибки записи логируются как нефатальные.
type Service struct {
	repo   AuditRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса аудита
func NewService(repo AuditRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ShouldAudit единая точка политики аудита: пишем след только для
// идентифицированных акторов, гости не аудируются
func ShouldAudit(role domain.Role) bool {
	return role.IsAuthenticated()
}

// Record сохраняет before/after снимки сущности
// Снимки сериализуются в JSON; nil снимок (например, before при
// создании) записывается как NULL
func (s *Service) Record(
	ctx context.Context,
	entityName string,
	entityID int64,
	action domain.AuditAction,
	actor domain.Actor,
	before interface{},
	after interface{},
) {
	if !ShouldAudit(actor.Role) {
		return
	}

	beforeSnapshot, err := marshalSnapshot(before)
	if err != nil {
		s.logger.Error("audit: failed to serialize before snapshot for %s id=%d: %v", entityName, entityID, err)
		return
	}

	afterSnapshot, err := marshalSnapshot(after)
	if err != nil {
		s.logger.Error("audit: failed to serialize after snapshot for %s id=%d: %v", entityName, entityID, err)
		return
	}

	entry := &domain.AuditLog{
		EntityName: entityName,
		EntityID:   entityID,
		Action:     action,
		ActorEmail: actor.Email,
		ActorRole:  actor.Role,
		Before:     beforeSnapshot,
		After:      afterSnapshot,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error("audit: failed to record %s for %s id=%d: %v", action, entityName, entityID, err)
		return
	}

	s.logger.Info("audit: recorded %s for %s id=%d by %s (%s)",
		action, entityName, entityID, actor.Email, actor.Role)
}

func marshalSnapshot(v interface{}) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
