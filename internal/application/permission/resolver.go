// Package permission resuelve el conjunto efectivo de permisos de cada usuario.
package permission

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// Cache guarda conjuntos ya resueltos de vendedores. Un fallo de caché nunca bloquea la petición.
// Las entradas van por versión: Invalidate avanza la versión del usuario y lo escrito con la
// anterior deja de leerse, aunque una lectura concurrente lo guarde después.
type Cache interface {
	Version(ctx context.Context, userID int64) (int64, error)
	Get(ctx context.Context, userID, version int64) (*entity.PermissionSet, error) // nil, nil si no está
	Set(ctx context.Context, userID, version int64, perms entity.PermissionSet) error
	Invalidate(ctx context.Context, userID int64) error
}

// Resolver calcula permisos a partir del rol y de las filas de user_permissions.
type Resolver struct {
	repo  repository.PermissionRepository
	cache Cache
	log   *logger.Logger
}

// NewResolver construye el resolver. cache puede ser nil.
func NewResolver(repo repository.PermissionRepository, cache Cache, log *logger.Logger) *Resolver {
	return &Resolver{repo: repo, cache: cache, log: log}
}

// Resolve devuelve el conjunto efectivo. Rol desconocido: conjunto vacío y domain.ErrUnknownRole.
func (r *Resolver) Resolve(ctx context.Context, p entity.Principal) (entity.PermissionSet, error) {
	switch {
	case p.IsAdmin():
		return entity.AllPermissions(), nil
	case p.IsVendedor():
		return r.resolveStored(ctx, p.ID)
	default:
		return entity.PermissionSet{}, domain.ErrUnknownRole
	}
}

// Caller resuelve los permisos y los empaqueta con el principal.
func (r *Resolver) Caller(ctx context.Context, p entity.Principal) (entity.Caller, error) {
	perms, err := r.Resolve(ctx, p)
	if err != nil {
		return entity.Caller{}, err
	}
	return entity.Caller{Principal: p, Permissions: perms}, nil
}

func (r *Resolver) resolveStored(ctx context.Context, userID int64) (entity.PermissionSet, error) {
	// La versión se lee antes que la base: si Update corre en medio, lo que se cachee queda huérfano.
	version, cacheOK := int64(0), false
	if r.cache != nil {
		v, err := r.cache.Version(ctx, userID)
		if err != nil {
			r.log.Warn().Err(err).Int64("user_id", userID).Msg("caché de permisos no disponible")
		} else {
			version, cacheOK = v, true
			cached, err := r.cache.Get(ctx, userID, version)
			if err != nil {
				r.log.Warn().Err(err).Int64("user_id", userID).Msg("caché de permisos no disponible")
			} else if cached != nil {
				return *cached, nil
			}
		}
	}

	stored, err := r.repo.GetByUserID(ctx, userID)
	if err != nil {
		return entity.PermissionSet{}, fmt.Errorf("leer permisos del usuario %d: %w", userID, err)
	}
	perms := entity.DefaultVendedorPermissions()
	if stored != nil {
		perms = *stored
	}

	if cacheOK {
		if err := r.cache.Set(ctx, userID, version, perms); err != nil {
			r.log.Warn().Err(err).Int64("user_id", userID).Msg("no se pudo cachear permisos")
		}
	}
	return perms, nil
}

// Update reemplaza los permisos guardados de un usuario. Solo admin.
func (r *Resolver) Update(ctx context.Context, caller entity.Caller, userID int64, perms entity.PermissionSet) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if userID <= 0 {
		return domain.InvalidField("user_id", "debe ser un entero positivo")
	}
	if err := r.repo.Upsert(ctx, userID, perms); err != nil {
		return fmt.Errorf("guardar permisos del usuario %d: %w", userID, err)
	}
	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, userID); err != nil {
			r.log.Warn().Err(err).Int64("user_id", userID).Msg("no se pudo invalidar caché de permisos")
		}
	}
	r.log.Info().Int64("user_id", userID).Int64("admin_id", caller.ID).Msg("permisos actualizados")
	return nil
}
