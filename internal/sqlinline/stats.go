package sqlinline

const QDashboardStats = `--sql 2a94d1b8-6e37-4f52-b0c9-5d18e6a2f740
select
  (select count(*) from products p where p.user_id = $1::uuid) as total_products,
  (select count(*)
     from generations g
     join products p on p.id = g.product_id
    where p.user_id = $1::uuid) as total_generations,
  (select count(*)
     from products p
    where p.user_id = $1::uuid
      and p.created_at >= date_trunc('month', now())) as this_month_products;
`

const QRecentProducts = `--sql 914fc0d5-28ab-47e3-b61f-0c72a9e84d15
select id, product_name, category, image_url, created_at
from products
where user_id = $1::uuid
order by created_at desc
limit 6;
`
