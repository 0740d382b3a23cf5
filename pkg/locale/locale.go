// Package locale holds the user-facing string table for reports and
// tool labels, with English and Russian translations. Language
// selection uses golang.org/x/text matching so region and script
// variants resolve to the nearest supported language.
package locale

import "golang.org/x/text/language"

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Russian,
}

var matcher = language.NewMatcher(supported)

// Match resolves a BCP 47 language string ("en", "ru-RU", "en-GB")
// to the nearest supported language. Unknown inputs fall back to
// English.
func Match(lang string) language.Tag {
	_, idx := language.MatchStrings(matcher, lang)
	return supported[idx]
}

// Lookup returns the translation of key for the given language. Keys
// missing a translation fall back to English; unknown keys return the
// key itself so the caller never gets an empty label.
func Lookup(tag language.Tag, key string) string {
	if tag == language.Russian {
		if s, ok := ru[key]; ok {
			return s
		}
	}
	if s, ok := en[key]; ok {
		return s
	}
	return key
}

var en = map[string]string{
	// Tool names.
	"prongs":         "Prongs",
	"cutter":         "Cutter",
	"make_gem":       "Make Gem",
	"make_dupliface": "Make Dupli-face",
	"export_options": "Export Options",

	// Report headings.
	"export_stats": "Export Stats",
	"size":         "Size",
	"shank":        "Shank",
	"dim":          "Dimensions",
	"weight":       "Weight",
	"t_size":       "Size",
	"t_width":      "Width",
	"t_thickness":  "Thickness",
	"t_dim":        "Dimensions",
	"t_weight":     "Weight",
	"t_settings":   "Settings",
	"type":         "Type",
	"cut":          "Cut",
	"qty":          "Qty",
	"items":        "items",

	// Units.
	"mm":   "mm",
	"g":    "g",
	"ct":   "ct",
	"g/cm": "g/cm³",

	// Metals.
	"24kt":        "24 kt",
	"22kt":        "22 kt",
	"18kt_white":  "18 kt White",
	"14kt_white":  "14 kt White",
	"18kt_yellow": "18 kt Yellow",
	"14kt_yellow": "14 kt Yellow",
	"silver":      "Silver",
	"palladium":   "Palladium",
	"platinum":    "Platinum",
	"custom":      "Custom",
	"custom_name": "Custom Metal",

	// Stones.
	"diamond":  "Diamond",
	"zircon":   "Zircon",
	"topaz":    "Topaz",
	"emerald":  "Emerald",
	"ruby":     "Ruby",
	"sapphire": "Sapphire",

	// Cuts.
	"round":    "Round",
	"oval":     "Oval",
	"pearl":    "Pearl",
	"marquise": "Marquise",
	"baguette": "Baguette",
	"square":   "Square",

	// Errors.
	"error_file":  "File not found",
	"error_digit": "Value must be a number",
}

var ru = map[string]string{
	"prongs":         "Крапана",
	"cutter":         "Выборка",
	"make_gem":       "Создать камень",
	"make_dupliface": "Создать дубликатор",
	"export_options": "Параметры экспорта",

	"export_stats": "Экспортировать статистику",
	"size":         "Размер",
	"shank":        "Шинка",
	"dim":          "Габариты",
	"weight":       "Вес",
	"t_size":       "Размер",
	"t_width":      "Ширина",
	"t_thickness":  "Толщина",
	"t_dim":        "Габариты",
	"t_weight":     "Вес",
	"t_settings":   "Настройки",
	"type":         "Тип",
	"cut":          "Огранка",
	"qty":          "Количество",
	"items":        "шт.",

	"mm":   "мм",
	"g":    "г",
	"ct":   "кар",
	"g/cm": "г/см³",

	"24kt":        "24 кт",
	"22kt":        "22 кт",
	"18kt_white":  "18 кт белое",
	"14kt_white":  "14 кт белое",
	"18kt_yellow": "18 кт жёлтое",
	"14kt_yellow": "14 кт жёлтое",
	"silver":      "Серебро",
	"palladium":   "Палладий",
	"platinum":    "Платина",
	"custom":      "Другой",
	"custom_name": "Свой металл",

	"diamond":  "Бриллиант",
	"zircon":   "Циркон",
	"topaz":    "Топаз",
	"emerald":  "Изумруд",
	"ruby":     "Рубин",
	"sapphire": "Сапфир",

	"round":    "Круг",
	"oval":     "Овал",
	"pearl":    "Груша",
	"marquise": "Маркиз",
	"baguette": "Багет",
	"square":   "Квадрат",

	"error_file":  "Файл не найден",
	"error_digit": "Значение должно быть числом",
}
