// Package copygen contains the generation pipeline: prompt construction,
// model-response parsing, and the orchestrating service.
package copygen

import (
	"fmt"
	"strings"

	"lariskan-server/internal/domain"
)

// toneDescriptions maps tone codes to the Indonesian style phrase injected
// into the prompt. Unknown tones fall back to casual.
var toneDescriptions = map[domain.Tone]string{
	domain.ToneCasual:       "santai, friendly, dan mudah dipahami",
	domain.ToneProfessional: "formal, terpercaya, dan informatif",
	domain.TonePersuasive:   "meyakinkan, menggugah emosi, dan mendorong pembelian",
	domain.ToneGenZ:         "kekinian, menggunakan bahasa gaul, emoji, dan relatable untuk anak muda",
}

// categoryContext maps category codes to a one-phrase domain description.
// Unknown categories fall back to the generic "produk".
var categoryContext = map[domain.Category]string{
	domain.CategoryFashion:     "produk fashion/pakaian",
	domain.CategoryElectronics: "produk elektronik/gadget",
	domain.CategoryHome:        "produk rumah tangga/dekorasi",
	domain.CategoryFood:        "produk makanan/minuman",
	domain.CategoryBeauty:      "produk kecantikan/kesehatan",
	domain.CategorySports:      "produk olahraga/outdoor",
	domain.CategoryOther:       "produk",
}

// ToneDescription resolves the style phrase for a tone code.
func ToneDescription(tone domain.Tone) string {
	if desc, ok := toneDescriptions[tone]; ok {
		return desc
	}
	return toneDescriptions[domain.ToneCasual]
}

// CategoryDescription resolves the domain phrase for a category code.
func CategoryDescription(category domain.Category) string {
	if desc, ok := categoryContext[category]; ok {
		return desc
	}
	return categoryContext[domain.CategoryOther]
}

// BuildPrompt renders the single deterministic prompt sent alongside the
// product image. The reply contract is a bare JSON object with exactly the
// keys marketplace, instagram, and website.
func BuildPrompt(req domain.GenerationRequest) string {
	toneDesc := ToneDescription(req.Tone)
	categoryDesc := CategoryDescription(req.Category)

	sb := &strings.Builder{}
	sb.WriteString("Kamu adalah copywriter profesional yang ahli membuat deskripsi produk untuk e-commerce Indonesia.\n\n")

	sb.WriteString("ANALISIS GAMBAR PRODUK:\n")
	sb.WriteString("Perhatikan gambar produk dengan seksama. Identifikasi:\n")
	sb.WriteString("- Warna, bentuk, dan desain produk\n")
	sb.WriteString("- Material atau bahan yang terlihat\n")
	sb.WriteString("- Fitur visual yang menonjol\n")
	sb.WriteString("- Kesan premium/casual/modern dari produk\n\n")

	sb.WriteString("INFORMASI PRODUK:\n")
	fmt.Fprintf(sb, "- Nama Produk: %s\n", req.ProductName)
	fmt.Fprintf(sb, "- Kategori: %s\n", categoryDesc)
	fmt.Fprintf(sb, "- Fitur Utama: %s\n", req.KeyFeatures)
	fmt.Fprintf(sb, "- Tone of Voice: %s\n\n", toneDesc)

	sb.WriteString("TUGAS:\n")
	fmt.Fprintf(sb, "Buatkan 3 variasi deskripsi produk dalam Bahasa Indonesia dengan tone %q:\n\n", req.Tone)

	sb.WriteString("1. **MARKETPLACE** (untuk Shopee/Tokopedia):\n")
	sb.WriteString("   - Panjang: 150-200 kata\n")
	sb.WriteString("   - Format: Paragraf pembuka yang menarik + bullet points fitur + call-to-action\n")
	sb.WriteString("   - Sertakan kata kunci SEO yang relevan\n")
	sb.WriteString("   - Gunakan emoji secukupnya (2-3 emoji)\n\n")

	sb.WriteString("2. **INSTAGRAM** (untuk caption):\n")
	sb.WriteString("   - Panjang: 80-120 kata\n")
	sb.WriteString("   - Format: Hook yang catchy + deskripsi singkat + hashtag relevan (5-7 hashtag)\n")
	sb.WriteString("   - Engaging dan shareable\n")
	sb.WriteString("   - Gunakan emoji yang sesuai\n\n")

	sb.WriteString("3. **WEBSITE** (untuk landing page):\n")
	sb.WriteString("   - Panjang: 100-150 kata\n")
	sb.WriteString("   - Format: Headline persuasif + paragraf yang menjelaskan value proposition + benefit utama\n")
	sb.WriteString("   - Fokus pada storytelling dan emotional appeal\n")
	sb.WriteString("   - Professional dan meyakinkan\n\n")

	sb.WriteString("PENTING:\n")
	fmt.Fprintf(sb, "- Sesuaikan gaya bahasa dengan tone %q\n", req.Tone)
	sb.WriteString("- Integrasikan detail visual dari gambar ke dalam deskripsi\n")
	sb.WriteString("- Buat setiap variasi unik dan tidak repetitif\n")
	sb.WriteString("- Gunakan Bahasa Indonesia yang natural\n\n")

	sb.WriteString("Berikan response dalam format JSON seperti ini (tanpa markdown code block):\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"marketplace\": \"deskripsi untuk marketplace...\",\n")
	sb.WriteString("  \"instagram\": \"caption untuk instagram...\",\n")
	sb.WriteString("  \"website\": \"deskripsi untuk website...\"\n")
	sb.WriteString("}")

	return sb.String()
}
