/*
Tài liệu kỹ thuật cho Microservices Crawler Phiên bản 1

1. Tổng quan

Crawler phiên bản 1 thu thập các repository GitHub có kiến trúc microservices
kèm database. Công cụ sử dụng GitHub Code Search API để tìm các file README
và docker-compose, sau đó phân loại nội dung và thẩm định cấu trúc repository
trước khi ghi nhận vào MongoDB.

2. Kiến trúc

Crawler được xây dựng với cấu trúc module rõ ràng:
- github_api: Module gọi API GitHub và xử lý phản hồi
- tokenpool, limiter: Quản lý vòng xoay token và giới hạn tốc độ
- partition: Sinh các khoảng kích thước file để vượt trần 1000 kết quả
- classifier, qualifier, enricher: Phân loại nội dung, thẩm định cấu trúc,
  bổ sung metadata
- model: Định nghĩa cấu trúc dữ liệu và tương tác với MongoDB
- crawler: Module chính quản lý quy trình thu thập dữ liệu

3. Quy trình thu thập dữ liệu

3.1 Phân mảnh theo kích thước file
- Search API chỉ trả về tối đa 1000 kết quả cho mỗi truy vấn
- Miền kích thước (start, max, step) được chia thành các khoảng rời nhau,
  mỗi khoảng ghép vào truy vấn dạng "size:lo..hi" để thu hẹp tập kết quả

3.2 Gọi GitHub Search API
- Crawler gọi API theo trang (pagination) cho từng cặp (truy vấn, khoảng)
- Mỗi trang có thể chứa tối đa 100 mục (giới hạn của GitHub API)
- Mỗi trang đã gọi được ghi một bản ghi performed_queries, kể cả trang rỗng
- Trang rỗng hoặc đạt số trang tối đa thì chuyển sang khoảng tiếp theo

3.3 Xử lý ứng viên
- Tải nội dung file khớp truy vấn (contents API, giải mã base64)
- README: yêu cầu xuất hiện từ khóa microservices và ít nhất một từ khóa
  database trên cùng văn bản đã chuyển chữ thường
- docker-compose: yêu cầu số service tối thiểu và image chứa từ khóa database
- Thẩm định cấu trúc: repository phải có đủ số thư mục cấp gốc tối thiểu
- Enrich metadata: stars, số commit, số contributor, ngày tạo và cập nhật,
  mỗi phần lỗi thì dùng giá trị mặc định thay vì hủy ứng viên

3.4 Lưu trữ dữ liệu
- Dữ liệu được lưu vào hai collection: performed_queries và
  admitted_repositories
- Không khử trùng lặp, một repository khớp nhiều khoảng sẽ có nhiều bản ghi

4. Các giới hạn kỹ thuật

4.1 Giới hạn GitHub API
- Giới hạn tìm kiếm: tối đa 1000 kết quả cho mỗi truy vấn tìm kiếm
- Giới hạn tốc độ:
  * 60 yêu cầu/giờ cho người dùng không xác thực
  * 5000 yêu cầu/giờ cho người dùng đã xác thực
- Crawler kiểm tra quota trước mỗi yêu cầu và xoay vòng token khi quota
  của token hiện tại xuống dưới ngưỡng cấu hình
- Khi search bị rate limit, crawler chờ theo backoff lũy thừa và thử lại
  với số lần giới hạn

4.2 Xử lý lỗi
- Lỗi mạng hoặc lỗi API khi tìm kiếm được ghi log và xem như trang rỗng
- Lỗi ở từng bước xử lý ứng viên chỉ loại ứng viên đó, không dừng crawl
- Lỗi ghi database được ghi log, crawl tiếp tục với trang kế tiếp

5. Hướng dẫn sử dụng

- Cấu hình truy vấn, miền kích thước và token trong tệp cấu hình
- Cung cấp nhiều GitHub API token để tăng tổng quota khả dụng
- Chạy ứng dụng từ cmd/run
*/

package crawler
