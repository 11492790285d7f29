package messages

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed active.ru.toml
var messageFS embed.FS

// Catalog resolves bot answer texts by message id.
type Catalog struct {
	localizer *i18n.Localizer
	log       *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) (*Catalog, error) {
	bundle := i18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if _, err := bundle.LoadMessageFileFS(messageFS, "active.ru.toml"); err != nil {
		return nil, err
	}
	return &Catalog{
		localizer: i18n.NewLocalizer(bundle, language.Russian.String()),
		log:       log,
	}, nil
}

func (c *Catalog) Get(id string) string {
	return c.GetData(id, nil)
}

// GetData localizes a message with template data. A missing id falls back
// to the id itself so a broken catalog never breaks a conversation.
func (c *Catalog) GetData(id string, data map[string]interface{}) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		c.log.Warnw("message not found", "id", id, "err", err)
		return id
	}
	return msg
}
