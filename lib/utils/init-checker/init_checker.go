package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit паника при незаданной зависимости; аргументы парами "имя", значение.
// Типизированный nil (nil-указатель в интерфейсе) тоже считается незаданным
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: ожидаются пары имя/значение")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("CheckInit: имя зависимости #%d должно быть строкой", i/2))
		}
		if isNil(pairs[i+1]) {
			panic(fmt.Sprintf("зависимость %q не инициализирована", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
