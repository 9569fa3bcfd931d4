package services

import (
	"context"
	"net/http"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

const (
	pathTelegramLinkCode = "/api/telegram/link-code"
	pathTelegramStatus   = "/api/telegram/status"
)

type TelegramService interface {
	LinkCode(ctx context.Context) (models.TelegramLinkCode, error)
	Status(ctx context.Context) (models.TelegramStatus, error)
}

type telegramService struct {
	api API
}

func NewTelegramService(api API) TelegramService {
	return &telegramService{api: api}
}

func (s *telegramService) LinkCode(ctx context.Context) (models.TelegramLinkCode, error) {
	resp, err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: pathTelegramLinkCode})
	if err != nil {
		return models.TelegramLinkCode{}, err
	}
	code, ok := models.NormalizeTelegramLinkCode(resp.Payload)
	if !ok {
		return models.TelegramLinkCode{}, client.Unexpected(http.MethodPost, pathTelegramLinkCode, resp.Status, resp.Payload)
	}
	return code, nil
}

func (s *telegramService) Status(ctx context.Context) (models.TelegramStatus, error) {
	payload, err := s.api.Get(ctx, pathTelegramStatus, nil)
	if err != nil {
		return models.TelegramStatus{}, err
	}
	return models.NormalizeTelegramStatus(payload), nil
}
