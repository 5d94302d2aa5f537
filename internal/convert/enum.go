package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"devconsole/pkg/consoletypes"
)

// EnumConverter is the shared converter for every type implementing consoletypes.Enum.
// Parse expects "<type name>:<member>" and checks the type name against the destination;
// members match case-insensitively by name or by ordinal. Format yields the member name.
type EnumConverter struct{}

// Key returns consoletypes.TypeKeyEnum.
func (EnumConverter) Key() consoletypes.TypeKey {
	return consoletypes.TypeKeyEnum
}

// Parse resolves an enum member of target.
func (EnumConverter) Parse(text string, target reflect.Type) (any, error) {
	if !consoletypes.IsEnum(target) {
		return nil, fmt.Errorf("%s is not an enum type", consoletypes.TypeName(target))
	}

	prefix := consoletypes.TypeName(target) + ":"
	if !strings.HasPrefix(text, prefix) {
		return nil, fmt.Errorf("enum text %q does not name type %s", text, consoletypes.TypeName(target))
	}
	member := strings.TrimPrefix(text, prefix)

	values := consoletypes.EnumValuesOf(target)
	for _, v := range values {
		if strings.EqualFold(v.String(), member) && reflect.TypeOf(v) == target {
			return v, nil
		}
	}
	if i, err := strconv.Atoi(member); err == nil && i >= 0 && i < len(values) {
		return values[i], nil
	}

	return nil, fmt.Errorf("%q is not a member of %s", member, consoletypes.TypeName(target))
}

// Format renders the member name.
func (EnumConverter) Format(value any) (string, error) {
	e, ok := value.(consoletypes.Enum)
	if !ok {
		return "", fmt.Errorf("%T is not an enum", value)
	}
	return e.String(), nil
}
