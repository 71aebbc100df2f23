package consult

import "fmt"

// FallbackAnswer is returned whenever an answer cannot be generated.
const FallbackAnswer = "Xin lỗi, hiện tại tôi chưa thể trả lời câu hỏi của bạn. Vui lòng thử lại sau ít phút hoặc liên hệ nhân viên cửa hàng để được tư vấn trực tiếp."

const systemPrompt = `Bạn là nhân viên tư vấn nước hoa của cửa hàng.
Quy tắc bắt buộc:
1. Chỉ sử dụng thông tin có trong phần DỮ LIỆU CỬA HÀNG. Không bịa đặt sản phẩm, giá, thương hiệu, dung tích, đánh giá hay tình trạng kho.
2. Nếu dữ liệu không có câu trả lời, hãy nói rõ là cửa hàng hiện chưa có thông tin đó.
3. Giá phải được ghi đúng như trong dữ liệu.
4. Không nhắc đến sản phẩm của cửa hàng khác.
5. Trả lời bằng tiếng Việt, ngắn gọn, thân thiện.`

func userPrompt(context, query string) string {
	return fmt.Sprintf("DỮ LIỆU CỬA HÀNG:\n%s\n\nCÂU HỎI CỦA KHÁCH HÀNG:\n%s", context, query)
}
