// internal/delivery/telegram/app/bot/handlers/router/router.go
package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/pkg/logger"
)

// ErrNoHandler для входящего текста нет хэндлера
var ErrNoHandler = errors.New("handler not found")

// Router маршрутизатор хэндлеров
type Router interface {
	RegisterHandler(handler handlers.Handler)
	Handle(ctx context.Context, key string, params handlers.HandlerParams) (handlers.HandlerResult, error)
	GetHandler(key string) (handlers.Handler, bool)
	GetCommands() []string
}

// routerImpl реализация Router
type routerImpl struct {
	mu       sync.RWMutex
	handlers map[string]handlers.Handler // ключ: /команда или текст кнопки
}

// NewRouter создает новый роутер
func NewRouter() Router {
	return &routerImpl{
		handlers: make(map[string]handlers.Handler),
	}
}

// RegisterHandler регистрирует хэндлер по GetCommand()
func (r *routerImpl) RegisterHandler(handler handlers.Handler) {
	key := handler.GetCommand()

	// Для команд добавляем префикс /
	if handler.GetType() == handlers.TypeCommand && !strings.HasPrefix(key, "/") {
		key = "/" + key
	}

	r.mu.Lock()
	r.handlers[key] = handler
	r.mu.Unlock()

	logger.Debug("Зарегистрирован хэндлер: %s для %s: %s",
		handler.GetName(), handler.GetType(), key)
}

// Handle вызывает хэндлер для команды или текста
func (r *routerImpl) Handle(ctx context.Context, key string, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	handler, exists := r.GetHandler(key)
	if !exists {
		return handlers.HandlerResult{}, fmt.Errorf("%w: %q", ErrNoHandler, key)
	}

	logger.Debug("Вызов хэндлера: %s для: %s", handler.GetName(), key)

	result, err := handler.Execute(ctx, params)
	if err != nil {
		logger.Error("Ошибка в хэндлере %s для %s: %v", handler.GetName(), key, err)
		return handlers.HandlerResult{}, err
	}

	return result, nil
}

// GetHandler возвращает хэндлер по ключу
func (r *routerImpl) GetHandler(key string) (handlers.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, exists := r.handlers[key]
	return handler, exists
}

// GetCommands возвращает отсортированный список ключей
func (r *routerImpl) GetCommands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]string, 0, len(r.handlers))
	for cmd := range r.handlers {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)
	return commands
}

var _ Router = (*routerImpl)(nil)
