package infra

import (
	"fmt"
	"io"
	"os"
	"strings"

	"vote-cooldown/votecooldown/domain"

	"gopkg.in/yaml.v3"
)

// DefaultSites é o catálogo usado quando não há SITES_FILE.
var DefaultSites = []domain.Site{
	{ID: "MinecraftServers.org", URL: "https://minecraftservers.org/vote/123456", Reward: "5 Vote Keys"},
	{ID: "Minecraft-Server-List.com", URL: "https://minecraft-server-list.com/vote/123456", Reward: "3 Vote Keys"},
	{ID: "TopG.org", URL: "https://topg.org/minecraft-servers/vote-123456", Reward: "4 Vote Keys"},
	{ID: "MinecraftMP.com", URL: "https://minecraftmp.com/vote/123456", Reward: "6 Vote Keys"},
	{ID: "TopMinecraftServers.org", URL: "https://topminecraftservers.org/vote/123456", Reward: "5 Vote Keys"},
	{ID: "MinStatus.net", URL: "https://minstatus.net/vote/123456", Reward: "7 Vote Keys"},
}

// StaticCatalog é um catálogo imutável, na ordem em que foi declarado.
type StaticCatalog struct {
	sites []domain.Site
	index map[domain.SiteID]int
}

func NewStaticCatalog(sites []domain.Site) (*StaticCatalog, error) {
	c := &StaticCatalog{index: make(map[domain.SiteID]int, len(sites))}
	for _, s := range sites {
		s.ID = domain.SiteID(strings.TrimSpace(string(s.ID)))
		if s.ID == "" {
			return nil, domain.ErrEmptySite
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate voting site %q", s.ID)
		}
		c.index[s.ID] = len(c.sites)
		c.sites = append(c.sites, s)
	}
	return c, nil
}

func (c *StaticCatalog) Sites() []domain.Site {
	out := make([]domain.Site, len(c.sites))
	copy(out, c.sites)
	return out
}

func (c *StaticCatalog) Lookup(id domain.SiteID) (domain.Site, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Site{}, false
	}
	return c.sites[i], true
}

type sitesFile struct {
	Sites []domain.Site `yaml:"sites"`
}

// ParseCatalog lê um YAML no formato:
//
//	sites:
//	  - name: TopG.org
//	    url: https://topg.org/...
//	    reward: 4 Vote Keys
func ParseCatalog(r io.Reader) (*StaticCatalog, error) {
	var f sitesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode sites: %w", err)
	}
	if len(f.Sites) == 0 {
		return nil, fmt.Errorf("sites file has no entries")
	}
	return NewStaticCatalog(f.Sites)
}

// LoadCatalog lê o catálogo de path; path vazio devolve DefaultSites.
func LoadCatalog(path string) (*StaticCatalog, error) {
	if strings.TrimSpace(path) == "" {
		return NewStaticCatalog(DefaultSites)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ParseCatalog(fh)
}
