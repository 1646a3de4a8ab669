package rbac

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"hr-pipeline-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

// ModulePermissions права роли в модуле, для клиента
type ModulePermissions struct {
	Module      models.Module       `json:"module"`
	Permissions []models.Permission `json:"permissions"`
}

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
	GetPermissionsView(role models.UserRole) []ModulePermissions
	Can(role models.UserRole, module models.Module, permission models.Permission) bool
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	i := &impl{
		routes:      map[HTTPMethod]*routeTable{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	if err := i.initRules(); err != nil {
		panic(err.Error())
	}
	return i
}

// routeTable правила одного http метода: сначала точные пути, затем шаблоны с {param}
type routeTable struct {
	exact    map[string]models.RbacFunc
	patterns []patternRoute
}

type patternRoute struct {
	source  string
	re      *regexp.Regexp
	handler models.RbacFunc
}

type impl struct {
	routes      map[HTTPMethod]*routeTable
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	table, ok := i.routes[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	path = normalizePath(path)
	if handler, ok := table.exact[path]; ok {
		return handler, true
	}
	for _, route := range table.patterns {
		if route.re.MatchString(path) {
			return route.handler, true
		}
	}
	return nil, false
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	table, ok := i.routes[method]
	if !ok {
		table = &routeTable{exact: map[string]models.RbacFunc{}}
		i.routes[method] = table
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}

	if !strings.Contains(path, "{") {
		if _, exist := table.exact[path]; exist {
			return errors.Errorf("правило для %s %s уже зарегистрировано", method, path)
		}
		table.exact[path] = handler
	} else {
		for _, route := range table.patterns {
			if route.source == path {
				return errors.Errorf("правило для %s %s уже зарегистрировано", method, path)
			}
		}
		table.patterns = append(table.patterns, patternRoute{
			source:  path,
			re:      pathToRegex(path),
			handler: handler,
		})
	}

	for _, role := range roles {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		if !slices.Contains(i.permissions[role][module], permission) {
			i.permissions[role][module] = append(i.permissions[role][module], permission)
		}
	}
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func (i *impl) GetPermissionsView(role models.UserRole) []ModulePermissions {
	result := make([]ModulePermissions, 0, len(i.permissions[role]))
	for module, permissions := range i.permissions[role] {
		sorted := slices.Clone(permissions)
		slices.Sort(sorted)
		result = append(result, ModulePermissions{Module: module, Permissions: sorted})
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].Module < result[b].Module
	})
	return result
}

func (i *impl) Can(role models.UserRole, module models.Module, permission models.Permission) bool {
	return slices.Contains(i.permissions[role][module], permission)
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return role.In(accessRoles...)
	}
}

// pathToRegex каждый сегмент {param} совпадает с одним непустым сегментом пути
func pathToRegex(path string) *regexp.Regexp {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for n, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[n] = `[^/]+`
			continue
		}
		segments[n] = regexp.QuoteMeta(segment)
	}
	return regexp.MustCompile("^/" + strings.Join(segments, "/") + "$")
}

var swaggerPatternRe = regexp.MustCompile(`^(\S+)\s+\[(\w+)\]$`)

// parseSwaggerPattern строка из аннотации @router, например "/api/v1/candidates/{id} [get]"
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	match := swaggerPatternRe.FindStringSubmatch(strings.TrimSpace(pattern))
	if match == nil {
		return "", "", errors.Errorf("в шаблоне не указан метод: %q", pattern)
	}
	return normalizePath(match[1]), HTTPMethod(strings.ToUpper(match[2])), nil
}

func normalizePath(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	path = strings.TrimSuffix(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
