package service

import (
	"strings"

	"github.com/snowie2000/hdhomerun/model"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const defaultGroup = "etc"

type Group struct {
	GroupName string          `json:"group_name"`
	List      []model.Channel `json:"list"`
}

// GroupSort groups channels in first-seen order, puts ungrouped channels last
// and renumbers everything 1..n in that order.
func GroupSort() ([]Group, error) {
	scanLock.Lock()
	defer scanLock.Unlock()

	channels, err := GetAllChannel(false)
	if err != nil {
		return nil, err
	}
	groups := orderedmap.New[string, *Group]()
	for _, ch := range channels {
		name := strings.TrimSpace(ch.GroupName)
		if name == "" {
			name = defaultGroup
		}
		g, ok := groups.Get(name)
		if !ok {
			g = &Group{GroupName: name}
			groups.Set(name, g)
		}
		g.List = append(g.List, ch)
	}
	if g, ok := groups.Delete(defaultGroup); ok {
		groups.Set(defaultGroup, g)
	}

	result := make([]Group, 0, groups.Len())
	number := 1
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		for i := range pair.Value.List {
			ch := &pair.Value.List[i]
			if ch.ChNumber != number {
				ch.ChNumber = number
				if err := SaveChannel(ch); err != nil {
					return nil, err
				}
			}
			number++
		}
		result = append(result, *pair.Value)
	}
	return result, nil
}
