package confession

import (
	"errors"
	"strings"

	"github.com/sandeepkv93/graced/internal/model"
)

var ErrUnknownSin = errors.New("confession: unknown sin")

var CommonSins = []model.CommonSin{
	{ID: "1", Sin: "Pride", Virtue: "Humility", Description: "Excessive self-love and arrogance", Category: "pride"},
	{ID: "2", Sin: "Vanity", Virtue: "Modesty", Description: "Excessive concern with appearance", Category: "pride"},
	{ID: "3", Sin: "Boasting", Virtue: "Humility", Description: "Bragging about achievements", Category: "pride"},
	{ID: "4", Sin: "Anger", Virtue: "Patience", Description: "Uncontrolled anger and rage", Category: "wrath"},
	{ID: "5", Sin: "Impatience", Virtue: "Patience", Description: "Lack of patience with others", Category: "wrath"},
	{ID: "6", Sin: "Resentment", Virtue: "Forgiveness", Description: "Holding grudges against others", Category: "wrath"},
	{ID: "7", Sin: "Jealousy", Virtue: "Contentment", Description: "Envying others possessions or success", Category: "envy"},
	{ID: "8", Sin: "Covetousness", Virtue: "Gratitude", Description: "Desiring what belongs to others", Category: "envy"},
	{ID: "9", Sin: "Greed", Virtue: "Generosity", Description: "Excessive desire for wealth", Category: "greed"},
	{ID: "10", Sin: "Selfishness", Virtue: "Charity", Description: "Putting self before others", Category: "greed"},
	{ID: "11", Sin: "Materialism", Virtue: "Detachment", Description: "Excessive attachment to possessions", Category: "greed"},
	{ID: "12", Sin: "Laziness", Virtue: "Diligence", Description: "Avoiding work and responsibility", Category: "sloth"},
	{ID: "13", Sin: "Procrastination", Virtue: "Promptness", Description: "Delaying important tasks", Category: "sloth"},
	{ID: "14", Sin: "Spiritual Apathy", Virtue: "Devotion", Description: "Neglecting prayer and spiritual duties", Category: "sloth"},
	{ID: "15", Sin: "Overeating", Virtue: "Temperance", Description: "Eating beyond necessity", Category: "gluttony"},
	{ID: "16", Sin: "Excessive Drinking", Virtue: "Sobriety", Description: "Drinking alcohol to excess", Category: "gluttony"},
	{ID: "17", Sin: "Impure Thoughts", Virtue: "Purity", Description: "Entertaining lustful thoughts", Category: "lust"},
	{ID: "18", Sin: "Inappropriate Desires", Virtue: "Chastity", Description: "Desires contrary to Gods will", Category: "lust"},
	{ID: "19", Sin: "Lying", Virtue: "Honesty", Description: "Speaking falsehoods", Category: "pride"},
	{ID: "20", Sin: "Gossiping", Virtue: "Discretion", Description: "Speaking ill of others", Category: "wrath"},
	{ID: "21", Sin: "Judging Others", Virtue: "Compassion", Description: "Harsh judgment of others", Category: "pride"},
	{ID: "22", Sin: "Unforgiveness", Virtue: "Mercy", Description: "Refusing to forgive others", Category: "wrath"},
	{ID: "23", Sin: "Worry", Virtue: "Trust", Description: "Excessive anxiety and worry", Category: "sloth"},
	{ID: "24", Sin: "Complaining", Virtue: "Gratitude", Description: "Constant complaining and negativity", Category: "wrath"},
}

// LookupSin finds a catalog entry by id or by case-insensitive sin name.
func LookupSin(key string) (model.CommonSin, bool) {
	key = strings.TrimSpace(key)
	for _, s := range CommonSins {
		if s.ID == key || strings.EqualFold(s.Sin, key) {
			return s, true
		}
	}
	return model.CommonSin{}, false
}
