package domain

import "testing"

func TestClassifyTheme(t *testing.T) {
	t.Run("月キーワードは月テンプレートになるのだ", func(t *testing.T) {
		cases := []string{
			"dnd monsters by month",
			"Monthly dungeon hazards",
			"TTRPG calendar of curses",
			"a potion for every MONTH",
		}
		for _, theme := range cases {
			tpl := ClassifyTheme(theme)
			if tpl.Kind != TemplateMonth {
				t.Errorf("テーマ %q の分類が違うのだ。期待: TemplateMonth, 実際: %v", theme, tpl.Kind)
			}
			if tpl.SlideCount != 13 {
				t.Errorf("テーマ %q の期待枚数が違うのだ。期待: 13, 実際: %d", theme, tpl.SlideCount)
			}
			if len(tpl.Sections) != 12 || tpl.Sections[0] != "January" || tpl.Sections[11] != "December" {
				t.Errorf("月テンプレートのセクションが壊れているのだ: %v", tpl.Sections)
			}
		}
	})

	t.Run("クラスキーワードはクラステンプレートになるのだ", func(t *testing.T) {
		cases := []string{
			"every class as a sandwich",
			"Classes ranked by chaos",
		}
		for _, theme := range cases {
			tpl := ClassifyTheme(theme)
			if tpl.Kind != TemplateClass {
				t.Errorf("テーマ %q の分類が違うのだ。期待: TemplateClass, 実際: %v", theme, tpl.Kind)
			}
			if tpl.SlideCount != 14 {
				t.Errorf("テーマ %q の期待枚数が違うのだ。期待: 14, 実際: %d", theme, tpl.SlideCount)
			}
			if len(tpl.Sections) != 13 {
				t.Errorf("クラステンプレートのセクション数が違うのだ。期待: 13, 実際: %d", len(tpl.Sections))
			}
		}
	})

	t.Run("一致しないテーマは汎用テンプレートになるのだ", func(t *testing.T) {
		tpl := ClassifyTheme("cursed taverns of the northern coast")
		if tpl.Kind != TemplateGeneric {
			t.Errorf("分類が違うのだ。期待: TemplateGeneric, 実際: %v", tpl.Kind)
		}
		if tpl.SlideCount != 13 {
			t.Errorf("汎用テンプレートの期待枚数が違うのだ。期待: 13, 実際: %d", tpl.SlideCount)
		}
		if tpl.Sections != nil {
			t.Errorf("汎用テンプレートにセクションは無いはずなのだ: %v", tpl.Sections)
		}
	})

	t.Run("単語単位で照合するのだ", func(t *testing.T) {
		// "classic" や "classless" はクラステンプレートを選ばない
		if tpl := ClassifyTheme("classic dnd monsters"); tpl.Kind != TemplateGeneric {
			t.Errorf("部分一致で誤分類されているのだ: %v", tpl.Kind)
		}
		if tpl := ClassifyTheme("a classless society"); tpl.Kind != TemplateGeneric {
			t.Errorf("部分一致で誤分類されているのだ: %v", tpl.Kind)
		}
	})

	t.Run("月キーワードがクラスより優先されるのだ", func(t *testing.T) {
		tpl := ClassifyTheme("a class for every month")
		if tpl.Kind != TemplateMonth {
			t.Errorf("優先順位が違うのだ。期待: TemplateMonth, 実際: %v", tpl.Kind)
		}
	})

	t.Run("同じ入力は常に同じ結果になるのだ", func(t *testing.T) {
		first := ClassifyTheme("dnd items by month")
		second := ClassifyTheme("dnd items by month")
		if first.Kind != second.Kind || first.SlideCount != second.SlideCount {
			t.Errorf("純粋関数のはずが結果が揺れているのだ。1回目: %+v, 2回目: %+v", first, second)
		}
	})
}
