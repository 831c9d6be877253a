// Package authz defines the authorization principal: the authenticated
// identity acting on behalf of a request.
//
// The HTTP layer resolves the principal once and stores it in the request
// context with WithPrincipal. Handlers read it back with FromContext and pass
// it explicitly into every service and policy call; nothing below the handler
// reads the principal from the context.
package authz
