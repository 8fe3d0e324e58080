package injector

import "github.com/junioryono/cdi/internal/reflection"

// In marks a parameter object. When a constructor accepts a single struct
// parameter that embeds In, each exported field is resolved on its own.
//
// Example:
//
//	type ServiceParams struct {
//	    injector.In
//
//	    Database *sql.DB
//	    Replica  *sql.DB `name:"replica"`
//	    Cache    Cache   `optional:"true"`
//	}
//
//	func NewService(params ServiceParams) *Service {
//	    return &Service{db: params.Database, cache: params.Cache}
//	}
//
// Supported tags:
//   - name:"x"        resolve the binding qualified by name x
//   - optional:"true" leave the zero value when nothing is bound
//   - inject:"-"      skip the field
type In = reflection.In

// Singleton marks a just-in-time type whose instance is created once per
// Injector. Embed it in the struct:
//
//	type Clock struct {
//	    injector.Singleton
//
//	    Logger *zap.Logger `inject:""`
//	}
type Singleton = reflection.Singleton

// ApplicationScoped behaves like Singleton.
type ApplicationScoped = reflection.ApplicationScoped

// PostConstructor is implemented by just-in-time types that finish their
// initialization once every injection point is set. An error fails the
// resolution.
type PostConstructor = reflection.PostConstructor
