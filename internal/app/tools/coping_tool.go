package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// Fixed tips used when the knowledge base has nothing on the topic.
var defaultCopingTips = []string{
	"Latihan pernapasan 4-7-8: tarik napas 4 detik, tahan 7 detik, hembuskan 8 detik.",
	"Tulis tiga hal yang Anda syukuri hari ini di jurnal.",
	"Jalan kaki santai 10-15 menit di luar ruangan.",
	"Batasi kafein dan layar gawai menjelang tidur.",
	"Hubungi teman atau keluarga yang Anda percaya dan ceritakan perasaan Anda.",
}

// CopingTool recommends coping strategies. It reads (never writes) the
// knowledge base; with no index or no match it falls back to a fixed list.
type CopingTool struct {
	index domain.VectorIndex
}

func NewCopingTool(index domain.VectorIndex) *CopingTool {
	return &CopingTool{index: index}
}

func (t *CopingTool) Name() string { return "beri_rekomendasi_kesehatan_mental" }

func (t *CopingTool) Description() string {
	return "Gunakan untuk memberikan rekomendasi coping kesehatan mental berdasarkan topik dari database."
}

func (t *CopingTool) Call(ctx context.Context, tctx ToolContext, arg string) (string, error) {
	topic := strings.TrimSpace(arg)
	if topic == "" {
		topic = "tips coping kesehatan mental"
	}

	if t.index != nil {
		res, err := t.index.Search(ctx, topic, 3)
		if err == nil && len(res) > 0 {
			var b strings.Builder
			b.WriteString("Beberapa rekomendasi dari database kami:\n")
			for i, sp := range res {
				fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(sp.Passage.Text))
			}
			return b.String(), nil
		}
		// A broken index must not break the tool; the fixed list below is
		// always available.
	}

	var b strings.Builder
	b.WriteString("Beberapa strategi coping yang bisa Anda coba:\n")
	for i, tip := range defaultCopingTips {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
	}
	return b.String(), nil
}
