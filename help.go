package deploysample

import (
	"strings"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
)

// Help renders example environment variables for the HTTP runtime, the
// native lambda runtime and any extra components the hosted functions
// are configured with.
func Help(components ...interface{}) (string, error) {
	all := append([]interface{}{runhttp.NewComponent(), NewLambdaComponent()}, components...)
	groups := make([]settings.Group, 0, len(all))
	for _, c := range all {
		grp, err := settings.GroupFromComponent(c)
		if err != nil {
			return "", err
		}
		groups = append(groups, grp)
	}
	return settings.ExampleEnvGroups([]settings.Group{&settings.SettingGroup{
		NameValue:   strings.ToUpper(settingsPrefix),
		GroupValues: groups,
	}}), nil
}
