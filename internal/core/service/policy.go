package service

import (
	"fmt"

	"github.com/blogosphere/blog/internal/core/domain"
)

// Policy decides whether an actor may update or delete a post.
type Policy interface {
	CanModify(actor domain.Actor, post *domain.Post) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(actor domain.Actor, post *domain.Post) bool

func (f PolicyFunc) CanModify(actor domain.Actor, post *domain.Post) bool {
	return f(actor, post)
}

// AllowAll lets any authenticated actor modify any post.
var AllowAll = PolicyFunc(func(domain.Actor, *domain.Post) bool { return true })

// AuthorOnly restricts modification to the post's author.
var AuthorOnly = PolicyFunc(func(actor domain.Actor, post *domain.Post) bool {
	return post.AuthorID == actor.UserID
})

const (
	PolicyAllowAll   = "allow_all"
	PolicyAuthorOnly = "author"
)

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PolicyAllowAll:
		return AllowAll, nil
	case PolicyAuthorOnly:
		return AuthorOnly, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}
