package usecase_test

import (
	"context"
	"fmt"

	"github.com/tu-usuario/marketplace-pro/internal/application/ports"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/pkg/logger"
)

// Implementaciones en memoria de los puertos de persistencia. Conservan el
// orden de inserción para que los listados sean deterministas en los tests.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// ── UserRepository ────────────────────────────────────────────────────────────

type memUserRepo struct {
	users []*entity.User
}

func (r *memUserRepo) Create(user *entity.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *memUserRepo) Delete(id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *memUserRepo) ListByBusiness(businessID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.BusinessID == businessID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListAll() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// ── BusinessRepository ────────────────────────────────────────────────────────

type memBusinessRepo struct {
	businesses []*entity.Business
}

func (r *memBusinessRepo) Create(business *entity.Business) error {
	cp := *business
	r.businesses = append(r.businesses, &cp)
	return nil
}

func (r *memBusinessRepo) GetByID(id string) (*entity.Business, error) {
	for _, b := range r.businesses {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memBusinessRepo) Update(business *entity.Business) error {
	for i, b := range r.businesses {
		if b.ID == business.ID {
			cp := *business
			r.businesses[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memBusinessRepo) ListAccessible(ownerID, businessID string) ([]*entity.Business, error) {
	var out []*entity.Business
	for _, b := range r.businesses {
		if b.OwnerID == ownerID || (businessID != "" && b.ID == businessID) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBusinessRepo) ListAll() ([]*entity.Business, error) {
	out := make([]*entity.Business, 0, len(r.businesses))
	for _, b := range r.businesses {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct {
	products   []*entity.Product
	businesses *memBusinessRepo
}

func (r *memProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.products = append(r.products, &cp)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	for i, p := range r.products {
		if p.ID == product.ID {
			cp := *product
			r.products[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memProductRepo) Delete(id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memProductRepo) visible(actorID, businessID string, p *entity.Product) bool {
	if businessID != "" && p.BusinessID == businessID {
		return true
	}
	b, _ := r.businesses.GetByID(p.BusinessID)
	return b != nil && b.OwnerID == actorID
}

func (r *memProductRepo) ListVisible(actorID, businessID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if r.visible(actorID, businessID, p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memProductRepo) ListAll(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return page(out, limit, offset), nil
}

func (r *memProductRepo) ListApproved(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Status == entity.StatusApproved {
			cp := *p
			out = append(out, &cp)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memProductRepo) ListApprovedVisible(actorID, businessID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Status == entity.StatusApproved && r.visible(actorID, businessID, p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func page(list []*entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

// ── ChatMessageRepository ─────────────────────────────────────────────────────

type memChatRepo struct {
	messages   []*entity.ChatMessage
	failCreate bool
}

func (r *memChatRepo) Create(message *entity.ChatMessage) error {
	if r.failCreate {
		return fmt.Errorf("insert chat message: conexión perdida")
	}
	cp := *message
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *memChatRepo) ListByUser(userID string, limit, offset int) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].UserID == userID {
			cp := *r.messages[i]
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── LLMService ────────────────────────────────────────────────────────────────

type fakeLLM struct {
	reply string
	err   error

	calls        int
	gotSystem    string
	gotUser      string
	lastDeadline bool
}

func (f *fakeLLM) GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.gotSystem = systemPrompt
	f.gotUser = userMessage
	_, f.lastDeadline = ctx.Deadline()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// ── Mailer ────────────────────────────────────────────────────────────────────

type fakeMailer struct {
	sent []ports.Invitation
	err  error
}

func (f *fakeMailer) SendInvitation(inv ports.Invitation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, inv)
	return nil
}
